package protocol_test

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"gridhunt.ai/internal/protocol"
)

func TestSchemas_ValidateSamples(t *testing.T) {
	compile := func(name string) *jsonschema.Schema {
		t.Helper()
		p := filepath.Join("..", "..", "schemas", name)
		s, err := jsonschema.Compile(p)
		if err != nil {
			t.Fatalf("compile %s: %v", name, err)
		}
		return s
	}

	roundTrip := func(v any) any {
		t.Helper()
		b, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var out any
		if err := json.Unmarshal(b, &out); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		return out
	}

	validate := func(s *jsonschema.Schema, v any) {
		t.Helper()
		if err := s.Validate(roundTrip(v)); err != nil {
			t.Fatalf("validate: %v", err)
		}
	}

	eventSchema := compile("agent_event.schema.json")
	tickSchema := compile("tick_log_entry.schema.json")
	helloSchema := compile("hello.schema.json")
	runSchema := compile("run.schema.json")
	frameSchema := compile("frame.schema.json")

	robotEv := protocol.AgentEvent{
		AgentID: 1,
		Kind:    protocol.KindRobot,
		Tick:    7,
		Action:  protocol.ActionAdvance,
		Success: true,
		Reason:  protocol.ReasonAdvanced,
		Tier:    protocol.TierTable,
		Pos:     [3]int{2, 1, 1},
		Facing:  "+X",
	}
	monsterEv := protocol.AgentEvent{
		AgentID: 1,
		Kind:    protocol.KindMonster,
		Tick:    7,
		Action:  protocol.ActionIdle,
		Success: false,
		Reason:  protocol.ReasonNotScheduled,
		Pos:     [3]int{3, 3, 3},
	}
	validate(eventSchema, robotEv)
	validate(eventSchema, monsterEv)

	digest := strings.Repeat("ab", 32)

	validate(tickSchema, protocol.TickLogEntry{
		Tick:   7,
		Events: []protocol.AgentEvent{monsterEv, robotEv},
		Robots: 2,
		Energy: 1,
		Digest: digest,
	})

	validate(helloSchema, protocol.HelloMsg{
		Type:            protocol.TypeHello,
		ProtocolVersion: protocol.Version,
		ObserverName:    "watcher",
	})

	validate(runSchema, protocol.RunMsg{
		Type:            protocol.TypeRun,
		ProtocolVersion: protocol.Version,
		RunID:           "run-1",
		Seed:            42,
		Side:            6,
		Ticks:           15,
	})

	validate(frameSchema, protocol.FrameMsg{
		Type:            protocol.TypeFrame,
		ProtocolVersion: protocol.Version,
		Tick:            7,
		Layer:           "[#][#]\n[#][#]\n",
		Events:          []protocol.AgentEvent{robotEv},
		Digest:          digest,
	})
}

func TestSchemas_RejectBadEvent(t *testing.T) {
	p := filepath.Join("..", "..", "schemas", "agent_event.schema.json")
	s, err := jsonschema.Compile(p)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	var bad any
	_ = json.Unmarshal([]byte(`{
	  "agent_id": 0,
	  "kind": "GHOST",
	  "tick": 0,
	  "action": "ADVANCE",
	  "success": true,
	  "reason": "advanced",
	  "pos": [1, 1, 1]
	}`), &bad)
	if err := s.Validate(bad); err == nil {
		t.Fatalf("unknown kind accepted")
	}
}
