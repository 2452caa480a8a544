package domain

type WorkoutType string

const (
	WorkoutRest        WorkoutType = "rest"
	WorkoutRun         WorkoutType = "run"
	WorkoutRowing      WorkoutType = "rowing"
	WorkoutStrength    WorkoutType = "strength"
	WorkoutRunStrength WorkoutType = "run+strength"
)

// ValidWorkoutTypes is the canonical set of accepted workout type strings.
var ValidWorkoutTypes = map[WorkoutType]bool{
	WorkoutRest: true, WorkoutRun: true, WorkoutRowing: true,
	WorkoutStrength: true, WorkoutRunStrength: true,
}

// WithRowing composes a rowing marker onto t. Rowing only sets the type of
// an otherwise empty day; next to a run it is recorded but not labelled.
func (t WorkoutType) WithRowing() WorkoutType {
	if t == WorkoutRest || t == "" {
		return WorkoutRowing
	}
	return t
}

// WithStrength composes a strength marker onto t.
func (t WorkoutType) WithStrength() WorkoutType {
	switch t {
	case WorkoutRun, WorkoutRunStrength:
		return WorkoutRunStrength
	default:
		return WorkoutStrength
	}
}

// HasRun reports whether the type carries run fields.
func (t WorkoutType) HasRun() bool {
	return t == WorkoutRun || t == WorkoutRunStrength
}

type CompileStatus string

const (
	CompileRunning   CompileStatus = "running"
	CompileCompleted CompileStatus = "completed"
	CompilePartial   CompileStatus = "partial"
	CompileFailed    CompileStatus = "failed"
	CompileCancelled CompileStatus = "cancelled"
)

// DefaultPhaseNames is the fixed phase set used when none is configured.
var DefaultPhaseNames = []string{"Foundation", "Durability", "Specificity"}
