package cyclebreaker

type DA int

func A() DA { return 0 }

func RecoverErr(fn func() DA, errp *error) {}
