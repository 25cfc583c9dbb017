package pipeline

import "solana-token-scope/internal/gateway"

// Generation identifies one query's in-flight stage operations.
// Results tagged with a generation other than the active one are discarded.
type Generation uint64

// State is the controller's run-state for the active generation.
type State string

// States.
const (
	StateIdle                   State = "idle"
	StateLookingUpToken         State = "looking_up_token"
	StateFetchingCreatorTrades  State = "fetching_creator_trades"
	StateFetchingCreatorHistory State = "fetching_creator_history"
	StateFetchingSmartMoney     State = "fetching_smart_money"
	StateFetchingSocial         State = "fetching_social"
	StateDone                   State = "done"
	StateFailed                 State = "failed"
)

// Terminal reports whether s ends a generation.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}

// Stage is one fetch+process step.
type Stage string

// Stages in execution order.
const (
	StageLookup         Stage = "lookup"
	StageCreatorTrades  Stage = "creator_trades"
	StageCreatorHistory Stage = "creator_history"
	StageSmartMoney     Stage = "smart_money"
	StageSocial         Stage = "social"
)

// Stages lists every stage in execution order.
var Stages = []Stage{StageLookup, StageCreatorTrades, StageCreatorHistory, StageSmartMoney, StageSocial}

var stageStates = map[Stage]State{
	StageLookup:         StateLookingUpToken,
	StageCreatorTrades:  StateFetchingCreatorTrades,
	StageCreatorHistory: StateFetchingCreatorHistory,
	StageSmartMoney:     StateFetchingSmartMoney,
	StageSocial:         StateFetchingSocial,
}

// stageProviders names the provider each stage fetches from.
var stageProviders = map[Stage]string{
	StageLookup:         gateway.ProviderPumpFun,
	StageCreatorTrades:  gateway.ProviderDebot,
	StageCreatorHistory: gateway.ProviderPumpFun,
	StageSmartMoney:     gateway.ProviderChainFM,
	StageSocial:         gateway.ProviderPumpNews,
}

// EventKind classifies a controller notification.
type EventKind string

// Event kinds.
const (
	EventStageChanged EventKind = "stage_changed" // a stage started or the generation ended
	EventResult       EventKind = "result"        // a stage completed and its view is updated
	EventStageError   EventKind = "stage_error"   // a stage failed; the pipeline continues unless State is failed
)

// Event is delivered to Options.Listener on the control loop.
type Event struct {
	Generation Generation `json:"generation"`
	Kind       EventKind  `json:"kind"`
	State      State      `json:"state"`
	Stage      Stage      `json:"stage,omitempty"`
	Error      string     `json:"error,omitempty"`
}
