package cpu

// Actions shared by the built-in catalogs.

func actNone(cpu *Cpu, remaining int) {}

// addressed reads the address operand into the pointer, one digit per cycle,
// then runs final on the last cycle.
func addressed(final Action) Action {
	return func(cpu *Cpu, remaining int) {
		if remaining > 1 {
			cpu.ReadPointer(remaining)
			return
		}
		final(cpu, remaining)
	}
}

// actStore writes ACC to memory at the pointer.
func actStore(cpu *Cpu, remaining int) {
	cpu.WriteMemory(cpu.Pointer().Clone(), cpu.Acc())
}

// actLoad reads memory at the pointer into ACC.
func actLoad(cpu *Cpu, remaining int) {
	cpu.ReadMemory(cpu.Pointer().Clone())
	cpu.SetAcc(cpu.MDR())
}

func actOut(cpu *Cpu, remaining int) {
	cpu.SetOut(cpu.Acc())
}

func actIn(cpu *Cpu, remaining int) {
	cpu.SetAcc(cpu.In())
}

func actSet(cpu *Cpu, remaining int) {
	cpu.SetB(cpu.Acc())
}

// actAdd sets ACC = ACC + B. OVERFLOW is the carry out, ZERO tests the sum.
// Flags are untouched when the sum is undefined.
func actAdd(cpu *Cpu, remaining int) {
	acc, b := cpu.Acc(), cpu.B()
	sum := acc.Add(b)
	if !sum.IsUndefined() {
		cpu.Flags.Set(FLAG_OVERFLOW, acc.Unsigned()+b.Unsigned() != sum.Unsigned())
		cpu.Flags.Set(FLAG_ZERO, sum.Equals(0))
	}
	cpu.SetAcc(sum)
}

// actSub sets ACC = ACC - B. OVERFLOW is the borrow, ZERO tests the
// difference.
func actSub(cpu *Cpu, remaining int) {
	acc, b := cpu.Acc(), cpu.B()
	diff := acc.Sub(b)
	if !diff.IsUndefined() {
		cpu.Flags.Set(FLAG_OVERFLOW, acc.Unsigned()-b.Unsigned() != diff.Unsigned())
		cpu.Flags.Set(FLAG_ZERO, diff.Equals(0))
	}
	cpu.SetAcc(diff)
}

// jumpIf branches to the address operand. If cond is set and false on the
// first cycle, the operand is skipped and the operation ends early.
func jumpIf(cond func(cpu *Cpu) bool) Action {
	return func(cpu *Cpu, remaining int) {
		switch {
		case remaining == cpu.Operation().Cycles && cond != nil && !cond(cpu):
			cpu.SkipOperand()
		case remaining > 1:
			cpu.ReadPointer(remaining)
		default:
			cpu.SetPC(cpu.Pointer())
		}
	}
}

func ifFlag(flag Flag) func(cpu *Cpu) bool {
	return func(cpu *Cpu) bool {
		return cpu.Flags.Get(flag)
	}
}
