package protocol

import "testing"

func TestEncodeDecodeRoundtrip(t *testing.T) {
	b, err := Encode(MsgPointer, Pointer{Phase: PhaseMove, X: 140.5, Y: 80})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	env, err := DecodeEnvelope(b)
	if err != nil {
		t.Fatalf("DecodeEnvelope: %v", err)
	}
	if env.T != MsgPointer {
		t.Fatalf("envelope type = %q, want %q", env.T, MsgPointer)
	}

	ptr, err := DecodePayload[Pointer](env)
	if err != nil {
		t.Fatalf("DecodePayload: %v", err)
	}
	if ptr.Phase != PhaseMove || ptr.X != 140.5 || ptr.Y != 80 {
		t.Fatalf("payload = %+v", ptr)
	}
}

func TestEncodeRejectsBadInput(t *testing.T) {
	if _, err := Encode("", Hello{V: 1}); err == nil {
		t.Fatalf("empty type accepted")
	}
	if _, err := Encode(MsgHello, nil); err == nil {
		t.Fatalf("nil payload accepted")
	}
}

func TestDecodeEnvelopeRejectsBadFrames(t *testing.T) {
	if _, err := DecodeEnvelope(nil); err == nil {
		t.Fatalf("empty frame accepted")
	}
	if _, err := DecodeEnvelope([]byte("{broken")); err == nil {
		t.Fatalf("malformed json accepted")
	}
}

func TestDecodePayloadRejectsEmptyPayload(t *testing.T) {
	if _, err := DecodePayload[Hello](Envelope{T: MsgHello}); err == nil {
		t.Fatalf("empty payload accepted")
	}
}

func TestCadenceConstantsDivide(t *testing.T) {
	if SimTickHz%BroadcastHz != 0 {
		t.Fatalf("simulation rate %d is not a multiple of broadcast rate %d",
			SimTickHz, BroadcastHz)
	}
}
