package define

import "testing"

// TestCheckpointKeyOrderIndependent 同一批单元无论顺序如何映射到同一个键
func TestCheckpointKeyOrderIndependent(t *testing.T) {
	a := CheckpointKey("s1", []uint{3, 1, 2})
	b := CheckpointKey("s1", []uint{1, 2, 3})
	if a != b {
		t.Errorf("期望键相同, 实际 %q != %q", a, b)
	}
	if a != "s1:1,2,3" {
		t.Errorf("期望键 s1:1,2,3, 实际 %q", a)
	}
}

// TestCheckpointKeyDistinct 不同会话或不同单元批次的键不重叠
func TestCheckpointKeyDistinct(t *testing.T) {
	if CheckpointKey("s1", []uint{1}) == CheckpointKey("s2", []uint{1}) {
		t.Error("不同会话的键不应相同")
	}
	if CheckpointKey("s1", []uint{1}) == CheckpointKey("s1", []uint{2}) {
		t.Error("不同单元批次的键不应相同")
	}
}

// TestCheckpointValidate 结构不完整的检查点必须被拒绝
func TestCheckpointValidate(t *testing.T) {
	valid := &Checkpoint{SessionID: "s1", QueueIDs: []uint{1}, Current: 1}
	if err := valid.Validate(); err != nil {
		t.Errorf("完整检查点不应校验失败: %v", err)
	}

	cases := []struct {
		name string
		cp   *Checkpoint
	}{
		{"缺少会话ID", &Checkpoint{QueueIDs: []uint{1}, Current: 1}},
		{"缺少单元列表", &Checkpoint{SessionID: "s1", Current: 1}},
		{"缺少当前单元", &Checkpoint{SessionID: "s1", QueueIDs: []uint{1}}},
	}
	for _, tc := range cases {
		if err := tc.cp.Validate(); err == nil {
			t.Errorf("%s: 期望校验失败", tc.name)
		}
	}
}
