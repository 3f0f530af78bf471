package domain

// Module is the coarse subsystem label assigned to a test file
type Module string

const (
	ModulePersistence  Module = "persistence"
	ModuleExchange     Module = "exchange"
	ModuleStrategy     Module = "strategy"
	ModuleFreqtradebot Module = "freqtradebot"
	ModuleOptimize     Module = "optimize"
	ModuleLeverage     Module = "leverage"
	ModuleData         Module = "data"
	ModuleRPC          Module = "rpc"
	ModuleFreqAI       Module = "freqai"
	ModuleUtil         Module = "util"
	ModuleCore         Module = "core"
)

// Priority is the urgency label assigned to a single test
type Priority string

const (
	PriorityP0 Priority = "P0"
	PriorityP1 Priority = "P1"
	PriorityP2 Priority = "P2"
)

// TestRecord describes one test function found in a test file
type TestRecord struct {
	Name         string   `json:"name"`
	Line         int      `json:"line"`
	File         string   `json:"file"` // Path relative to the scanned root
	Skipped      bool     `json:"skipped"`
	Parametrized bool     `json:"parametrized"`
	Priority     Priority `json:"priority"`
	Module       Module   `json:"module"`
	Marks        []string `json:"marks,omitempty"` // pytest.mark names from the decorator block
}

// ClassInfo is a test class declaration
type ClassInfo struct {
	Name string `json:"name"`
	Line int    `json:"line"`
}
