package observer

import "testing"

func TestNoopDiscardsEvents(t *testing.T) {
	var o Observer = Noop{}
	o.Visit(Event{Kind: EventVisit, Dimension: 1, Depth: 2})
}

func TestRecorderAccumulatesAndResets(t *testing.T) {
	r := &Recorder{}
	r.Visit(Event{Kind: EventInsert, Depth: 1})
	r.Visit(Event{Kind: EventRemove, Depth: 2})

	if len(r.Events) != 2 {
		t.Fatalf("got %d events, want 2", len(r.Events))
	}
	if r.Events[0].Kind != EventInsert || r.Events[1].Kind != EventRemove {
		t.Errorf("events recorded out of order: %+v", r.Events)
	}

	r.Reset()
	if len(r.Events) != 0 {
		t.Errorf("after Reset, len = %d, want 0", len(r.Events))
	}
}
