package engine

import "testing"

func TestMergeSessionsGroupsByName(t *testing.T) {
	s1 := NewSession(ScenarioRef{Module: "checkout"}, nil)
	s1.AddResult("status", "ok")
	s2 := NewSession(ScenarioRef{Module: "checkout"}, nil)
	s2.AddResult("status", "fail")

	out := MergeSessions([]*Session{s1, s2})

	group, ok := out["checkout"]
	if !ok || len(group) != 2 {
		t.Fatalf("expected 2 sessions grouped under 'checkout', got %#v", out)
	}
}

func TestMergeAsyncChildTagsEachKey(t *testing.T) {
	parent := NewSession(ScenarioRef{Module: "parent"}, nil)
	child := NewSession(ScenarioRef{Module: "child"}, nil)
	child.AddResult("status", "ok")
	child.AddMetric("latency_ms", 42)

	mergeAsyncChild(parent, "fork", child)

	resV, _ := parent.Result("fork")
	tag, ok := resV.(AsyncTag)
	if !ok || tag.Action != "status" || tag.Value != "ok" {
		t.Errorf("unexpected merged result: %#v", resV)
	}

	metV, _ := parent.Metric("fork")
	mtag, ok := metV.(AsyncTag)
	if !ok || mtag.Action != "latency_ms" || mtag.Value != 42 {
		t.Errorf("unexpected merged metric: %#v", metV)
	}
}

func TestMergeAsyncChildDoesNotMergeErrors(t *testing.T) {
	parent := NewSession(ScenarioRef{Module: "parent"}, nil)
	child := NewSession(ScenarioRef{Module: "child"}, nil)
	child.AddError("boom", errBoom{})

	mergeAsyncChild(parent, "fork", child)

	if len(parent.Errors) != 0 {
		t.Errorf("expected mergeAsyncChild to leave parent.Errors untouched, got %v", parent.Errors)
	}
}

type errBoom struct{}

func (errBoom) Error() string { return "boom" }
