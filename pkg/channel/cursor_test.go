package channel_test

import (
	"sync"
	"testing"

	qerrors "github.com/ledgerstream/streams-go/internal/errors"
	"github.com/ledgerstream/streams-go/pkg/channel"
)

func testAppInst(fill byte) channel.AppInst {
	var a channel.AppInst
	for i := range a {
		a[i] = fill
	}
	return a
}

func testPublisher(fill byte) channel.PublisherID {
	var id channel.PublisherID
	for i := range id {
		id[i] = fill
	}
	return id
}

func TestRegisterAndCursor(t *testing.T) {
	state := channel.NewState(testAppInst(0x01), false)
	pub := testPublisher(0xAA)

	if _, ok := state.Cursor(pub); ok {
		t.Error("unregistered publisher should have no cursor")
	}

	cur := channel.Cursor{Link: testAddress(0x03), SeqNo: 3}
	state.Register(pub, cur)

	got, ok := state.Cursor(pub)
	if !ok {
		t.Fatal("registered publisher should have a cursor")
	}
	if got != cur {
		t.Errorf("cursor: got %+v, want %+v", got, cur)
	}
}

func TestAdvanceUnknownPublisher(t *testing.T) {
	state := channel.NewState(testAppInst(0x01), false)

	_, err := state.Advance(testPublisher(0xAA), testAddress(0x04))
	if !qerrors.Is(err, qerrors.ErrUnknownPublisher) {
		t.Errorf("got %v, want ErrUnknownPublisher", err)
	}
}

func TestSnapshotIsolation(t *testing.T) {
	state := channel.NewState(testAppInst(0x01), false)
	pub := testPublisher(0xAA)

	addrA := testAddress(0x03)
	state.Register(pub, channel.Cursor{Link: addrA, SeqNo: 3})

	before := state.NextMessageIDs()

	addrB := testAddress(0x04)
	advanced, err := state.Advance(pub, addrB)
	if err != nil {
		t.Fatalf("Advance failed: %v", err)
	}
	if advanced.SeqNo != 4 || advanced.Link != addrB {
		t.Errorf("advanced cursor: got %+v, want {%v 4}", advanced, addrB)
	}

	after := state.NextMessageIDs()

	// The fresh snapshot reflects the advance; the prior one does not.
	if got := after[pub]; got.SeqNo != 4 || got.Link != addrB {
		t.Errorf("fresh snapshot: got %+v, want {%v 4}", got, addrB)
	}
	if got := before[pub]; got.SeqNo != 3 || got.Link != addrA {
		t.Errorf("prior snapshot mutated: got %+v, want {%v 3}", got, addrA)
	}
}

func TestNextMessageIDsCoversAllPublishers(t *testing.T) {
	state := channel.NewState(testAppInst(0x01), false)
	pubs := []channel.PublisherID{testPublisher(0x01), testPublisher(0x02), testPublisher(0x03)}
	for i, pub := range pubs {
		state.Register(pub, channel.Cursor{Link: testAddress(byte(i)), SeqNo: uint64(i)})
	}

	snapshot := state.NextMessageIDs()
	if len(snapshot) != len(pubs) {
		t.Fatalf("snapshot size: got %d, want %d", len(snapshot), len(pubs))
	}
	for i, pub := range pubs {
		if snapshot[pub].SeqNo != uint64(i) {
			t.Errorf("publisher %d: got seq %d, want %d", i, snapshot[pub].SeqNo, i)
		}
	}
}

func TestDeriveMsgIDDeterministic(t *testing.T) {
	appinst := testAppInst(0x05)
	pub := testPublisher(0xBB)

	a := channel.DeriveMsgID(appinst, pub, 7)
	b := channel.DeriveMsgID(appinst, pub, 7)
	if a != b {
		t.Error("DeriveMsgID should be deterministic")
	}

	if a == channel.DeriveMsgID(appinst, pub, 8) {
		t.Error("different sequence numbers should derive different msgids")
	}
	if a == channel.DeriveMsgID(appinst, testPublisher(0xCC), 7) {
		t.Error("different publishers should derive different msgids")
	}
	if a == channel.DeriveMsgID(testAppInst(0x06), pub, 7) {
		t.Error("different channels should derive different msgids")
	}
}

func TestAdvanceNextDerivesAddress(t *testing.T) {
	appinst := testAppInst(0x05)
	state := channel.NewState(appinst, false)
	pub := testPublisher(0xBB)
	state.Register(pub, channel.Cursor{SeqNo: 3})

	cur, err := state.AdvanceNext(pub)
	if err != nil {
		t.Fatalf("AdvanceNext failed: %v", err)
	}
	if cur.SeqNo != 4 {
		t.Errorf("sequence: got %d, want 4", cur.SeqNo)
	}
	want := channel.Address{AppInst: appinst, MsgID: channel.DeriveMsgID(appinst, pub, 4)}
	if cur.Link != want {
		t.Errorf("derived link: got %v, want %v", cur.Link, want)
	}
}

func TestAdvanceNextRejectsBranching(t *testing.T) {
	state := channel.NewState(testAppInst(0x05), true)
	pub := testPublisher(0xBB)
	state.Register(pub, channel.Cursor{SeqNo: 0})

	_, err := state.AdvanceNext(pub)
	if !qerrors.Is(err, qerrors.ErrMissingSequencingLink) {
		t.Errorf("got %v, want ErrMissingSequencingLink", err)
	}
}

func TestConcurrentAdvanceNeverRepeatsSequence(t *testing.T) {
	state := channel.NewState(testAppInst(0x09), false)
	pub := testPublisher(0xDD)
	state.Register(pub, channel.Cursor{SeqNo: 0})

	const workers = 32
	const perWorker = 16

	var mu sync.Mutex
	seen := make(map[uint64]bool)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				cur, err := state.AdvanceNext(pub)
				if err != nil {
					t.Errorf("AdvanceNext failed: %v", err)
					return
				}
				mu.Lock()
				if seen[cur.SeqNo] {
					t.Errorf("sequence number %d claimed twice", cur.SeqNo)
				}
				seen[cur.SeqNo] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	cur, _ := state.Cursor(pub)
	if cur.SeqNo != workers*perWorker {
		t.Errorf("final sequence: got %d, want %d", cur.SeqNo, workers*perWorker)
	}
}

func TestRegisterResetsCursor(t *testing.T) {
	state := channel.NewState(testAppInst(0x01), false)
	pub := testPublisher(0xAA)

	state.Register(pub, channel.Cursor{SeqNo: 3})
	state.Register(pub, channel.Cursor{SeqNo: 0})

	cur, _ := state.Cursor(pub)
	if cur.SeqNo != 0 {
		t.Errorf("re-registration should reset the cursor, got seq %d", cur.SeqNo)
	}
}
