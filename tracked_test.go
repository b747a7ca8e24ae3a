package sprig

import "testing"

func TestTrackedVersion(t *testing.T) {
	tr := NewTracked([]int{1, 2})
	if tr.Version() != 0 {
		t.Fatalf("Version = %d, want 0", tr.Version())
	}
	_ = tr.Get()
	if tr.Version() != 0 {
		t.Errorf("Get bumped the version")
	}
	(*tr.GetMut())[0] = 5
	if tr.Version() != 1 {
		t.Errorf("Version = %d, want 1", tr.Version())
	}
	if tr.Get()[0] != 5 {
		t.Errorf("value = %v", tr.Get())
	}
}
