package tasktable

import "testing"

func TestNewTable_GetByID(t *testing.T) {
	tbl := NewTable([]Task{
		NoOp,
		{ID: 1, Name: "blink", Enabled: true, Run: func() uint16 { return 0 }},
		{ID: 5, Name: "adc_sample", Enabled: true, Run: func() uint16 { return 0 }},
	})

	if tbl.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", tbl.Len())
	}

	task := tbl.Get(5)
	if task == nil || task.Name != "adc_sample" {
		t.Fatalf("Get(5) = %+v, want adc_sample task", task)
	}

	if tbl.Get(99) != nil {
		t.Fatal("Get(99) should return nil for unregistered ID")
	}
}

func TestTable_GetReturnsAliasedPointer(t *testing.T) {
	tbl := NewTable([]Task{{ID: 1, Name: "t", Enabled: true}})
	task := tbl.Get(1)
	task.ReturnValue = 42

	again := tbl.Get(1)
	if again.ReturnValue != 42 {
		t.Fatalf("mutation via Get() pointer not visible, ReturnValue = %d", again.ReturnValue)
	}
}

func TestNewTable_CopiesInputSlice(t *testing.T) {
	src := []Task{{ID: 1, Name: "t"}}
	tbl := NewTable(src)
	src[0].Name = "mutated"

	if got := tbl.Get(1).Name; got != "t" {
		t.Fatalf("Table aliases caller's slice, Name = %q", got)
	}
}

func TestNoOp_RunsWithoutSideEffects(t *testing.T) {
	if NoOp.ID != 0 {
		t.Fatalf("NoOp.ID = %d, want 0", NoOp.ID)
	}
	if !NoOp.Enabled {
		t.Fatal("NoOp must be Enabled")
	}
	if got := NoOp.Run(); got != 0 {
		t.Fatalf("NoOp.Run() = %d, want 0", got)
	}
}
