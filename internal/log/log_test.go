package log

import "testing"

func TestFallbackLogger(t *testing.T) {
	log = nil
	baseLogger = nil

	if GetSugaredLogger() == nil {
		t.Fatal("expected a fallback logger before Init")
	}
	Infow("logging before Init", "ok", true)
}

func TestInit(t *testing.T) {
	for _, debug := range []bool{false, true} {
		if err := Init(debug); err != nil {
			t.Fatalf("Init(%v) returned error: %v", debug, err)
		}
		if GetZapLogger() == nil {
			t.Fatalf("Init(%v) left no logger", debug)
		}
	}
	Sync()
}
