package opentherm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dwrobel/opentherm-library/hal/simulated"
)

type result struct {
	frame   Frame
	outcome ResponseStatus
}

// recorder collects handler invocations. Everything in these tests runs
// on one goroutine: the simulated input pin delivers edges synchronously.
type recorder struct {
	results []result
}

func (r *recorder) handle(f Frame, rs ResponseStatus) {
	r.results = append(r.results, result{frame: f, outcome: rs})
}

func newTestTransceiver(t *testing.T) (*Transceiver, *simulated.Rig, *recorder) {
	t.Helper()
	tr, rig := NewSimulated()
	rec := &recorder{}
	require.NoError(t, tr.Begin(rec.handle))
	require.True(t, tr.IsReady())
	return tr, rig, rec
}

// settle runs Process through the quiet period until the session is
// ready again.
func settle(tr *Transceiver, rig *simulated.Rig) {
	for !tr.IsReady() {
		tr.Process()
		rig.Clock.Advance(time.Millisecond)
	}
}

func TestLoopback(t *testing.T) {
	tr, rig, rec := newTestTransceiver(t)

	// An acknowledgement frame, so a clean loopback reports SUCCESS.
	request := BuildRequest(MsgReadACK, DataIDTboiler, 0x1580)
	require.NoError(t, tr.SendRequestAsync(request))

	edges := rig.Out.TakeEdges()
	require.NotEmpty(t, edges)
	require.False(t, edges[0].High, "burst must open by driving active")

	// Feed the transmitter's own timings back as response edges. The
	// receive line has the opposite polarity of the transmit line.
	shift := rig.Clock.Now().Sub(edges[0].At) + 5*time.Millisecond
	for _, e := range edges {
		rig.Clock.AdvanceTo(e.At.Add(shift))
		rig.In.SetLevel(!e.High)
	}

	tr.Process()
	require.Equal(t, []result{{frame: request, outcome: ResponseSuccess}}, rec.results)
	require.Equal(t, request, tr.LastResponse())
	require.Equal(t, ResponseSuccess, tr.LastResponseStatus())
	require.Equal(t, StatusDelay, tr.Status())

	settle(tr, rig)
	require.Len(t, rec.results, 1)
}

func TestExchangeWithSimulatedBoiler(t *testing.T) {
	tr, rig, rec := newTestTransceiver(t)

	boiler := simulated.Boiler{
		Respond: func(req uint32) (uint32, bool) {
			f := Frame(req)
			return uint32(BuildRequest(MsgReadACK, f.DataID(), 0x1580)), true
		},
	}

	require.NoError(t, tr.SendRequestAsync(BuildGetBoilerTemperatureRequest()))
	require.NoError(t, boiler.ServeOnce(rig))
	tr.Process()

	require.Len(t, rec.results, 1)
	require.Equal(t, ResponseSuccess, rec.results[0].outcome)
	require.Equal(t, MsgReadACK, rec.results[0].frame.MessageType())
	require.Equal(t, DataIDTboiler, rec.results[0].frame.DataID())
	require.Equal(t, float32(21.5), rec.results[0].frame.Temperature())

	settle(tr, rig)

	// The session is reusable: run a second, different exchange.
	require.NoError(t, tr.SendRequestAsync(BuildSetBoilerTemperatureRequest(55)))
	require.NoError(t, boiler.ServeOnce(rig))
	tr.Process()
	require.Len(t, rec.results, 2)
	require.Equal(t, ResponseSuccess, rec.results[1].outcome)
}

func TestNonAckResponseIsInvalid(t *testing.T) {
	tr, rig, rec := newTestTransceiver(t)

	boiler := simulated.Boiler{
		Respond: func(req uint32) (uint32, bool) {
			return uint32(BuildRequest(MsgUnknownDataID, Frame(req).DataID(), 0)), true
		},
	}

	require.NoError(t, tr.SendRequestAsync(BuildGetBoilerTemperatureRequest()))
	require.NoError(t, boiler.ServeOnce(rig))
	tr.Process()

	require.Len(t, rec.results, 1)
	require.Equal(t, ResponseInvalid, rec.results[0].outcome)
}

func TestTimeoutReportedExactlyOnce(t *testing.T) {
	tr, rig, rec := newTestTransceiver(t)

	require.NoError(t, tr.SendRequestAsync(BuildGetBoilerTemperatureRequest()))
	rig.Clock.Advance(ExchangeTimeout + time.Millisecond)
	tr.Process()

	require.Equal(t, []result{{frame: 0, outcome: ResponseTimeout}}, rec.results)
	require.True(t, tr.IsReady(), "timeout returns the session to ready with no delay")

	tr.Process()
	require.Len(t, rec.results, 1, "ready session must not re-report")
}

func TestSendRejectedWhileBusy(t *testing.T) {
	tr, rig, rec := newTestTransceiver(t)

	require.NoError(t, tr.SendRequestAsync(BuildGetBoilerTemperatureRequest()))
	rig.Out.TakeEdges()

	err := tr.SendRequestAsync(BuildSetBoilerTemperatureRequest(60))
	require.ErrorIs(t, err, ErrNotReady)
	require.Empty(t, rig.Out.TakeEdges(), "rejected send must not touch the line")
	require.Equal(t, StatusResponseWaiting, tr.Status())
	require.Equal(t, ResponseNone, tr.LastResponseStatus())
	require.Empty(t, rec.results)
}

func TestSendBeforeBegin(t *testing.T) {
	tr, rig := NewSimulated()
	err := tr.SendRequestAsync(BuildGetBoilerTemperatureRequest())
	require.ErrorIs(t, err, ErrNotInitialized)
	require.Empty(t, rig.Out.TakeEdges())

	frame, err := tr.SendRequest(BuildGetBoilerTemperatureRequest())
	require.ErrorIs(t, err, ErrNotInitialized)
	require.Zero(t, frame)
}

func TestQuietPeriodBlocksNextSend(t *testing.T) {
	tr, rig, _ := newTestTransceiver(t)

	boiler := simulated.Boiler{
		Respond: func(req uint32) (uint32, bool) {
			return uint32(BuildRequest(MsgReadACK, Frame(req).DataID(), 0)), true
		},
	}
	require.NoError(t, tr.SendRequestAsync(BuildGetBoilerTemperatureRequest()))
	require.NoError(t, boiler.ServeOnce(rig))
	tr.Process()
	require.Equal(t, StatusDelay, tr.Status())

	rig.Clock.Advance(90 * time.Millisecond)
	tr.Process()
	require.ErrorIs(t, tr.SendRequestAsync(BuildGetBoilerTemperatureRequest()), ErrNotReady)

	rig.Clock.Advance(20 * time.Millisecond)
	tr.Process()
	require.True(t, tr.IsReady())
	require.NoError(t, tr.SendRequestAsync(BuildGetBoilerTemperatureRequest()))
}

func TestLateStartBitEdgeIsInvalid(t *testing.T) {
	tr, rig, rec := newTestTransceiver(t)

	require.NoError(t, tr.SendRequestAsync(BuildGetBoilerTemperatureRequest()))

	// Line goes active, then the next transition arrives too late for a
	// start bit: the exchange dies without ever reaching the bit stage.
	rig.In.SetLevel(true)
	rig.Clock.Advance(800 * time.Microsecond)
	rig.In.SetLevel(false)

	tr.Process()
	require.Len(t, rec.results, 1)
	require.Equal(t, ResponseInvalid, rec.results[0].outcome)
	require.Equal(t, ResponseInvalid, tr.LastResponseStatus())
	require.Equal(t, StatusDelay, tr.Status())
}

func TestBlockingSendTimesOut(t *testing.T) {
	tr, _, rec := newTestTransceiver(t)

	// Nothing answers; the blocking path must come back with the
	// timeout outcome instead of spinning forever.
	frame, err := tr.SendRequest(BuildGetBoilerTemperatureRequest())
	require.ErrorIs(t, err, ErrTimeout)
	require.Zero(t, frame)
	require.Len(t, rec.results, 1)
	require.Equal(t, ResponseTimeout, rec.results[0].outcome)
}

func TestEndDetaches(t *testing.T) {
	tr, rig, _ := newTestTransceiver(t)

	tr.End()
	require.Equal(t, StatusNotInitialized, tr.Status())
	require.ErrorIs(t, tr.SendRequestAsync(BuildGetBoilerTemperatureRequest()), ErrNotInitialized)

	// Stray edges after End must be ignored.
	rig.In.SetLevel(true)
	rig.In.SetLevel(false)
	require.Equal(t, StatusNotInitialized, tr.Status())
}
