package voice

import (
	"fmt"
	"testing"
	"time"
)

func TestCommandLogRecent(t *testing.T) {
	log := NewCommandLog(10)
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	log.Append("ad to kart", "add to cart", base)
	log.Append("clear cart", "clear cart", base.Add(time.Second))
	log.Append("print bill", "print bill", base.Add(2*time.Second))

	recent := log.Recent(2)
	if len(recent) != 2 {
		t.Fatalf("len = %d, want 2", len(recent))
	}
	if recent[0].Raw != "print bill" || recent[1].Raw != "clear cart" {
		t.Fatalf("entries not newest first: %+v", recent)
	}
	if recent[0].Corrected != "print bill" {
		t.Fatalf("corrected = %q", recent[0].Corrected)
	}

	all := log.Recent(0)
	if len(all) != 3 {
		t.Fatalf("Recent(0) len = %d, want all entries", len(all))
	}
}

func TestCommandLogCapacity(t *testing.T) {
	log := NewCommandLog(3)
	for i := 0; i < 5; i++ {
		log.Append(fmt.Sprintf("utterance %d", i), "close", time.Now())
	}

	if log.Len() != 3 {
		t.Fatalf("len = %d, want 3", log.Len())
	}
	recent := log.Recent(3)
	if recent[0].Raw != "utterance 4" || recent[2].Raw != "utterance 2" {
		t.Fatalf("oldest entries not dropped: %+v", recent)
	}
}
