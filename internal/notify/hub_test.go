package notify

import "testing"

func TestHub_FanOut(t *testing.T) {
	h := NewHub()
	a, cancelA := h.Subscribe()
	b, cancelB := h.Subscribe()
	defer cancelB()

	h.Publish(Change{UserID: 7, RestaurantID: "X_1_2", Action: "saved"})

	for name, ch := range map[string]<-chan Change{"a": a, "b": b} {
		select {
		case got := <-ch:
			if got.RestaurantID != "X_1_2" || got.Action != "saved" {
				t.Fatalf("%s: got %+v", name, got)
			}
		default:
			t.Fatalf("%s: no event delivered", name)
		}
	}

	cancelA()
	cancelA() // idempotent
	h.Publish(Change{UserID: 7, RestaurantID: "X_1_2", Action: "removed"})
	if got, ok := <-a; ok {
		t.Fatalf("cancelled subscriber received %+v", got)
	}
	select {
	case got := <-b:
		if got.Action != "removed" {
			t.Fatalf("b: got %+v", got)
		}
	default:
		t.Fatal("b: no event after cancel of a")
	}
}

func TestHub_PublishNeverBlocks(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe()
	defer cancel()
	// Overfill the buffer; extra events are dropped, not blocked on.
	for i := 0; i < 50; i++ {
		h.Publish(Change{Action: "saved"})
	}
	if len(ch) == 0 {
		t.Fatal("expected buffered events")
	}
}
