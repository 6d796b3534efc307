package bytecode

import "testing"

func TestOpcodeStringKnown(t *testing.T) {
	cases := map[Opcode]string{
		PushInt: "push_int",
		IAdd:    "i_add",
		Halt:    "halt",
		Return:  "return",
	}
	for op, want := range cases {
		if got := op.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", op, got, want)
		}
	}
}

func TestOpcodeStringUnknown(t *testing.T) {
	if got := numOpcodes.String(); got == "" {
		t.Errorf("expected non-empty fallback string")
	}
}

func TestInstructionStringFormats(t *testing.T) {
	cases := []struct {
		name string
		ins  Instruction
		want string
	}{
		{"push int", Instruction{Op: PushInt, Int: 2}, "push_int 2"},
		{"store", Instruction{Op: Store, Name: "x"}, "store x"},
		{"jmp", Instruction{Op: Jmp, Offset: 1}, "jmp +1"},
		{"jmpz", Instruction{Op: JmpZ, Offset: -2}, "jmp_z -2"},
		{"call", Instruction{Op: CallFunction, Name: "double", Args: 1}, "call_function double 1"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.ins.String(); got != c.want {
				t.Errorf("String() = %q, want %q", got, c.want)
			}
		})
	}
}

func TestParseInstructionRoundTrip(t *testing.T) {
	cases := []Instruction{
		{Op: PushInt, Int: -3},
		{Op: PushFloat, Float: 1.5},
		{Op: PushUnsignedInt, UInt: 9},
		{Op: PushBool, Bool: true},
		{Op: PushChar, Char: 'x'},
		{Op: PushStr, ConstIndex: 2},
		{Op: Store, Name: "x"},
		{Op: Load, Name: "x"},
		{Op: Get, Slot: 4},
		{Op: CastTo, Cast: CastFloat},
		{Op: Jmp, Offset: 3},
		{Op: JmpZ, Offset: -3},
		{Op: CallFunction, Name: "double", Args: 1},
		{Op: DirectCall, Pos: 0, Args: 1},
		{Op: Call, Args: 2},
		{Op: ExternCall, Name: "trim", Args: 1},
		{Op: IAdd},
		{Op: Return},
		{Op: Halt},
	}
	for _, want := range cases {
		line := want.String()
		got, err := ParseInstruction(line)
		if err != nil {
			t.Fatalf("ParseInstruction(%q): %v", line, err)
		}
		if got.String() != line {
			t.Errorf("round trip: %q -> %+v -> %q", line, got, got.String())
		}
	}
}

func TestParseInstructionErrors(t *testing.T) {
	if _, err := ParseInstruction(""); err == nil {
		t.Errorf("expected error on empty line")
	}
	if _, err := ParseInstruction("not_an_opcode"); err == nil {
		t.Errorf("expected error on unknown opcode")
	}
	if _, err := ParseInstruction("push_int"); err == nil {
		t.Errorf("expected error on missing operand")
	}
}
