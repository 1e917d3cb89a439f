package repository

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hemalathapampana/Carrier-Optimization-sub000/internal/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("打开内存数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&models.SimDevice{}); err != nil {
		t.Fatalf("迁移设备表失败: %v", err)
	}
	return db
}

// TestListActiveIncludesGroupedDevices 在网设备无论是否已划入通信组都参与新一轮优化
func TestListActiveIncludesGroupedDevices(t *testing.T) {
	repo := NewSimDeviceRepository(testDB(t))

	groupID := uint(7)
	grouped := &models.SimDevice{ICCID: "89860000000000000001", SyncStatus: models.DeviceSyncActive, CommGroupID: &groupID}
	fresh := &models.SimDevice{ICCID: "89860000000000000002", SyncStatus: models.DeviceSyncActive}
	suspended := &models.SimDevice{ICCID: "89860000000000000003", SyncStatus: models.DeviceSyncSuspended}
	for _, d := range []*models.SimDevice{grouped, fresh, suspended} {
		if err := repo.Create(d); err != nil {
			t.Fatalf("创建设备 %s 失败: %v", d.ICCID, err)
		}
	}

	devices, err := repo.ListActive()
	if err != nil {
		t.Fatalf("读取在网设备失败: %v", err)
	}
	if len(devices) != 2 {
		t.Fatalf("期望2台在网设备, 实际 %d", len(devices))
	}

	seen := make(map[uint]bool)
	for _, d := range devices {
		seen[d.ID] = true
	}
	if !seen[grouped.ID] {
		t.Error("已划组的在网设备不应被排除")
	}
	if !seen[fresh.ID] {
		t.Error("未划组的在网设备应在结果中")
	}
	if seen[suspended.ID] {
		t.Error("停机设备不应在结果中")
	}
}

// TestDevicesByGroupFiltersInactive 组内设备读取只返回在网设备
func TestDevicesByGroupFiltersInactive(t *testing.T) {
	repo := NewSimDeviceRepository(testDB(t))

	groupID := uint(3)
	active := &models.SimDevice{ICCID: "89860000000000000011", SyncStatus: models.DeviceSyncActive, CommGroupID: &groupID}
	deactivated := &models.SimDevice{ICCID: "89860000000000000012", SyncStatus: models.DeviceSyncDeactivated, CommGroupID: &groupID}
	for _, d := range []*models.SimDevice{active, deactivated} {
		if err := repo.Create(d); err != nil {
			t.Fatalf("创建设备 %s 失败: %v", d.ICCID, err)
		}
	}

	devices, err := repo.DevicesByGroup(groupID)
	if err != nil {
		t.Fatalf("读取组内设备失败: %v", err)
	}
	if len(devices) != 1 || devices[0].ID != active.ID {
		t.Errorf("期望只返回在网设备 %d, 实际 %v", active.ID, devices)
	}
}
