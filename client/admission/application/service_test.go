package application

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"controlled-request/client/admission/domain"
)

type fakeRearm struct {
	calls int
}

func (f *fakeRearm) Rearm() { f.calls++ }

type fakeLatch struct {
	ok    bool
	rearm *fakeRearm
}

func (f fakeLatch) TryAcquire() (domain.Rearmer, bool) {
	if !f.ok {
		return nil, false
	}
	return f.rearm, true
}

type recordingStats struct {
	events []domain.StatsEvent
	err    error
}

func (r *recordingStats) Record(_ context.Context, ev domain.StatsEvent) error {
	r.events = append(r.events, ev)
	return r.err
}

func issuerReturning(payload string, err error, calls *int) domain.Issuer {
	return func(_ context.Context, _ string, _ map[string]string) (json.RawMessage, error) {
		*calls++
		if err != nil {
			return nil, err
		}
		return json.RawMessage(payload), nil
	}
}

func TestService_Do_RejectsSynchronouslyWithoutIssuing(t *testing.T) {
	calls := 0
	stats := &recordingStats{}
	svc := Service{
		Latch: fakeLatch{ok: false},
		Issue: issuerReturning(`{}`, nil, &calls),
		Stats: stats,
	}

	out, err := svc.Do(context.Background(), "/x", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Admitted {
		t.Fatalf("expected rejected outcome")
	}
	if out.Rearm != nil {
		t.Fatalf("rejected outcome must not carry a rearm token")
	}
	if calls != 0 {
		t.Fatalf("expected issuer not to be called, got %d calls", calls)
	}
	if len(stats.events) != 1 || stats.events[0].Result != domain.ResultRejected {
		t.Fatalf("expected one rejected stats event, got %+v", stats.events)
	}
}

func TestService_Do_AdmitsAndReturnsPayloadAndToken(t *testing.T) {
	calls := 0
	rearm := &fakeRearm{}
	stats := &recordingStats{}
	svc := Service{
		Latch: fakeLatch{ok: true, rearm: rearm},
		Issue: issuerReturning(`{"v":1}`, nil, &calls),
		Stats: stats,
	}

	out, err := svc.Do(context.Background(), "/x", map[string]string{"a": "b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Admitted {
		t.Fatalf("expected admitted outcome")
	}
	if string(out.Payload) != `{"v":1}` {
		t.Fatalf("unexpected payload: %s", out.Payload)
	}
	if out.Rearm == nil {
		t.Fatalf("expected rearm token")
	}
	if out.RequestID == "" {
		t.Fatalf("expected a request id")
	}
	if calls != 1 {
		t.Fatalf("expected one issuer call, got %d", calls)
	}
	if len(stats.events) != 1 || stats.events[0].Result != domain.ResultAdmitted {
		t.Fatalf("expected one admitted stats event, got %+v", stats.events)
	}
	if stats.events[0].RequestID != out.RequestID {
		t.Fatalf("stats event should carry the request id")
	}
}

func TestService_Do_FailurePropagatesAndStillCarriesToken(t *testing.T) {
	calls := 0
	boom := errors.New("boom")
	rearm := &fakeRearm{}
	stats := &recordingStats{}
	svc := Service{
		Latch: fakeLatch{ok: true, rearm: rearm},
		Issue: issuerReturning("", boom, &calls),
		Stats: stats,
	}

	out, err := svc.Do(context.Background(), "/x", nil)
	if !errors.Is(err, boom) {
		t.Fatalf("expected underlying error unchanged, got %v", err)
	}
	if !out.Admitted {
		t.Fatalf("failed call was still admitted")
	}
	if out.Rearm == nil {
		t.Fatalf("failure outcome must carry the rearm token, or the gate deadlocks")
	}
	if rearm.calls != 0 {
		t.Fatalf("service must not rearm by itself")
	}
	if len(stats.events) != 1 || stats.events[0].Result != domain.ResultFailed {
		t.Fatalf("expected one failed stats event, got %+v", stats.events)
	}
}

func TestService_Do_NilLatchAlwaysAdmits(t *testing.T) {
	calls := 0
	svc := Service{Issue: issuerReturning(`{}`, nil, &calls)}

	out, err := svc.Do(context.Background(), "/x", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Admitted {
		t.Fatalf("expected admitted when no latch is configured")
	}
	// token inerte, mas presente
	out.Rearm.Rearm()
	out.Rearm.Rearm()
}

func TestService_Do_StatsErrorIsIgnored(t *testing.T) {
	calls := 0
	stats := &recordingStats{err: errors.New("redis down")}
	svc := Service{
		Latch: fakeLatch{ok: true, rearm: &fakeRearm{}},
		Issue: issuerReturning(`{}`, nil, &calls),
		Stats: stats,
	}

	out, err := svc.Do(context.Background(), "/x", nil)
	if err != nil {
		t.Fatalf("stats error must not surface: %v", err)
	}
	if !out.Admitted {
		t.Fatalf("expected admitted outcome")
	}
}
