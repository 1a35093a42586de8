package button

import "testing"

type fakePin struct {
	high bool
	err  error
}

func (p *fakePin) IsHigh() (bool, error) { return p.high, p.err }

func TestButtonEdgeDetection(t *testing.T) {
	pin := &fakePin{high: true} // released
	b := New(pin)

	pressed, edge, err := b.Poll()
	if err != nil || pressed || edge {
		t.Fatalf("first poll: pressed=%v edge=%v err=%v, want false,false,nil", pressed, edge, err)
	}

	pin.high = false // pressed (active-low)
	pressed, edge, err = b.Poll()
	if err != nil || !pressed || !edge {
		t.Fatalf("press poll: pressed=%v edge=%v err=%v, want true,true,nil", pressed, edge, err)
	}

	pressed, edge, err = b.Poll()
	if err != nil || !pressed || edge {
		t.Fatalf("held poll: pressed=%v edge=%v err=%v, want true,false,nil", pressed, edge, err)
	}

	pin.high = true // released
	pressed, edge, err = b.Poll()
	if err != nil || pressed || !edge {
		t.Fatalf("release poll: pressed=%v edge=%v err=%v, want false,true,nil", pressed, edge, err)
	}
}

func TestButtonPropagatesPinError(t *testing.T) {
	pin := &fakePin{err: errFake}
	b := New(pin)
	_, edge, err := b.Poll()
	if err != errFake || edge {
		t.Fatalf("got edge=%v err=%v, want false,%v", edge, err, errFake)
	}
}

func TestDisabledAlwaysReleased(t *testing.T) {
	var d Disabled
	for i := 0; i < 3; i++ {
		pressed, edge, err := d.Poll()
		if pressed || edge || err != nil {
			t.Fatalf("poll %d: pressed=%v edge=%v err=%v, want false,false,nil", i, pressed, edge, err)
		}
	}
	if d.Pressed() {
		t.Fatal("Disabled.Pressed() = true, want false")
	}
}

var errFake = fakeErr("pin read failed")

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
