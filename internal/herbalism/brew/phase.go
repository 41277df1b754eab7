package brew

// Phase identifies the active step of the brew workflow. Exactly one
// phase is active at a time. Each phase owns the state scoped to it;
// backward transitions clear the exited phase's state so re-entry
// starts from a clean slate.
type Phase int

const (
	// PhaseSelectHerbs picks raw herb instances (by-herbs entry point).
	PhaseSelectHerbs Phase = iota
	// PhasePairElements assigns element pairs from the derived pool.
	PhasePairElements
	// PhaseSelectRecipes picks target recipes (by-recipe entry point).
	PhaseSelectRecipes
	// PhaseSelectHerbsForRecipes picks herbs to satisfy recipe needs.
	PhaseSelectHerbsForRecipes
	// PhaseMakeChoices resolves template placeholders.
	PhaseMakeChoices
	// PhaseBrewing awaits the resolution roll.
	PhaseBrewing
	// PhaseResult is the terminal phase for a single brew.
	PhaseResult
	// PhaseBatchResult is the terminal phase for a batch brew.
	PhaseBatchResult
)

func (p Phase) String() string {
	switch p {
	case PhaseSelectHerbs:
		return "select-herbs"
	case PhasePairElements:
		return "pair-elements"
	case PhaseSelectRecipes:
		return "select-recipes"
	case PhaseSelectHerbsForRecipes:
		return "select-herbs-for-recipes"
	case PhaseMakeChoices:
		return "make-choices"
	case PhaseBrewing:
		return "brewing"
	case PhaseResult:
		return "result"
	case PhaseBatchResult:
		return "batch-result"
	default:
		return "unknown"
	}
}

// terminal reports whether the phase ends the workflow.
func (p Phase) terminal() bool {
	return p == PhaseResult || p == PhaseBatchResult
}

// Mode selects which brewing path the workflow follows.
type Mode int

const (
	// ModeByHerbs starts from raw herbs and discovers effects by pairing.
	ModeByHerbs Mode = iota
	// ModeByRecipe starts from target recipes and gathers matching herbs.
	ModeByRecipe
)

func (m Mode) String() string {
	switch m {
	case ModeByHerbs:
		return "by-herbs"
	case ModeByRecipe:
		return "by-recipe"
	default:
		return "unknown"
	}
}

// initialPhase returns the entry phase for the mode.
func (m Mode) initialPhase() Phase {
	if m == ModeByRecipe {
		return PhaseSelectRecipes
	}
	return PhaseSelectHerbs
}
