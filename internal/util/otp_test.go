package util

import "testing"

func TestGenerateOtpCodeRange(t *testing.T) {
	for i := 0; i < 1000; i++ {
		code, err := GenerateOtpCode()
		if err != nil {
			t.Fatalf("GenerateOtpCode returned error: %v", err)
		}
		if code < 1000 || code > 9999 {
			t.Fatalf("code %d out of range [1000, 9999]", code)
		}
	}
}

func TestGenerateOtpCodeVaries(t *testing.T) {
	seen := make(map[int]struct{})
	for i := 0; i < 50; i++ {
		code, err := GenerateOtpCode()
		if err != nil {
			t.Fatalf("GenerateOtpCode returned error: %v", err)
		}
		seen[code] = struct{}{}
	}
	if len(seen) < 2 {
		t.Fatalf("expected varied codes, got %d distinct over 50 draws", len(seen))
	}
}
