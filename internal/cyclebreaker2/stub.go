package cyclebreaker2

func NilPanic(name string, value interface{}) {}
