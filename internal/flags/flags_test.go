package flags

import "testing"

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open flags store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGetUnsetFlag(t *testing.T) {
	s := openTestStore(t)

	value, ok, err := s.Get("never_set")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok || value != "" {
		t.Errorf("unset flag = %q, %v; want empty, false", value, ok)
	}
}

func TestSetGetDelete(t *testing.T) {
	s := openTestStore(t)

	if err := s.Set("theme", "dusk"); err != nil {
		t.Fatalf("set: %v", err)
	}
	value, ok, err := s.Get("theme")
	if err != nil || !ok || value != "dusk" {
		t.Errorf("get = %q, %v, %v; want dusk, true, nil", value, ok, err)
	}

	if err := s.Set("theme", "dawn"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	value, _, _ = s.Get("theme")
	if value != "dawn" {
		t.Errorf("after overwrite = %q, want dawn", value)
	}

	if err := s.Delete("theme"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	_, ok, _ = s.Get("theme")
	if ok {
		t.Error("flag still present after delete")
	}
}

func TestOnboardingFlag(t *testing.T) {
	s := openTestStore(t)

	if s.OnboardingComplete() {
		t.Error("fresh store reports onboarding complete")
	}
	if err := s.SetOnboardingComplete(true); err != nil {
		t.Fatalf("set onboarding: %v", err)
	}
	if !s.OnboardingComplete() {
		t.Error("onboarding flag not set")
	}
	if err := s.SetOnboardingComplete(false); err != nil {
		t.Fatalf("clear onboarding: %v", err)
	}
	if s.OnboardingComplete() {
		t.Error("onboarding flag not cleared")
	}
}
