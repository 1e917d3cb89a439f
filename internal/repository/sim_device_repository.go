package repository

import (
	"github.com/hemalathapampana/Carrier-Optimization-sub000/internal/models"

	"gorm.io/gorm"
)

type SimDeviceRepository struct {
	db *gorm.DB
}

func NewSimDeviceRepository(db *gorm.DB) *SimDeviceRepository {
	return &SimDeviceRepository{db: db}
}

// Create 创建设备(由外部同步子系统调用,引擎侧只读)
func (r *SimDeviceRepository) Create(device *models.SimDevice) error {
	return r.db.Create(device).Error
}

// GetByID 根据ID获取设备
func (r *SimDeviceRepository) GetByID(id uint) (*models.SimDevice, error) {
	var device models.SimDevice
	err := r.db.First(&device, id).Error
	if err != nil {
		return nil, err
	}
	return &device, nil
}

// GetByICCID 根据ICCID获取设备
func (r *SimDeviceRepository) GetByICCID(iccid string) (*models.SimDevice, error) {
	var device models.SimDevice
	err := r.db.Where("iccid = ?", iccid).First(&device).Error
	if err != nil {
		return nil, err
	}
	return &device, nil
}

// List 获取设备列表,支持分页和过滤
func (r *SimDeviceRepository) List(offset, limit int, filters map[string]interface{}) ([]models.SimDevice, int64, error) {
	var devices []models.SimDevice
	var total int64

	query := r.db.Model(&models.SimDevice{})

	// 应用过滤条件
	for key, value := range filters {
		if value != nil && value != "" {
			query = query.Where(key+" = ?", value)
		}
	}

	// 获取总数
	err := query.Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	// 获取分页数据
	err = query.Offset(offset).Limit(limit).Find(&devices).Error
	if err != nil {
		return nil, 0, err
	}

	return devices, total, nil
}

// DevicesByGroup 获取通信组内的全部在网设备(引擎输入)
func (r *SimDeviceRepository) DevicesByGroup(commGroupID uint) ([]models.SimDevice, error) {
	var devices []models.SimDevice
	err := r.db.
		Where("comm_group_id = ? AND sync_status = ?", commGroupID, models.DeviceSyncActive).
		Order("id ASC").
		Find(&devices).Error
	return devices, err
}

// ListActive 获取全部在网设备
// 每轮优化实例对在网设备重新划组,已有的组归属会被覆盖
func (r *SimDeviceRepository) ListActive() ([]models.SimDevice, error) {
	var devices []models.SimDevice
	err := r.db.
		Where("sync_status = ?", models.DeviceSyncActive).
		Order("id ASC").
		Find(&devices).Error
	return devices, err
}

// AssignGroup 把一批设备划入通信组
func (r *SimDeviceRepository) AssignGroup(deviceIDs []uint, commGroupID uint) error {
	if len(deviceIDs) == 0 {
		return nil
	}
	return r.db.Model(&models.SimDevice{}).
		Where("id IN ?", deviceIDs).
		Update("comm_group_id", commGroupID).Error
}

// Count 统计设备数量
func (r *SimDeviceRepository) Count(filters map[string]interface{}) (int64, error) {
	var count int64
	query := r.db.Model(&models.SimDevice{})

	for key, value := range filters {
		if value != nil && value != "" {
			query = query.Where(key+" = ?", value)
		}
	}

	err := query.Count(&count).Error
	return count, err
}
