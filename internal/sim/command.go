package sim

import "fmt"

type CommandKind int

const (
	CmdNone CommandKind = iota
	CmdMovePOI
	CmdSelectPOI
	CmdTogglePOI
	CmdAddPOI
	CmdRemovePOI
	CmdSpawnAgent
	CmdRemoveAgent
	CmdQuit
)

var kindNames = map[CommandKind]string{
	CmdNone:        "none",
	CmdMovePOI:     "move-poi",
	CmdSelectPOI:   "select-poi",
	CmdTogglePOI:   "toggle-poi",
	CmdAddPOI:      "add-poi",
	CmdRemovePOI:   "remove-poi",
	CmdSpawnAgent:  "spawn-agent",
	CmdRemoveAgent: "remove-agent",
	CmdQuit:        "quit",
}

func (k CommandKind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Command is a discrete user action. Dir is only meaningful for CmdMovePOI and
// Index only for CmdSelectPOI.
type Command struct {
	Kind  CommandKind
	Dir   Direction
	Index int
}

func MovePOI(dir Direction) Command { return Command{Kind: CmdMovePOI, Dir: dir} }
func SelectPOI(index int) Command   { return Command{Kind: CmdSelectPOI, Index: index} }
func TogglePOI() Command            { return Command{Kind: CmdTogglePOI} }
func AddPOI() Command               { return Command{Kind: CmdAddPOI} }
func RemovePOI() Command            { return Command{Kind: CmdRemovePOI} }
func SpawnAgent() Command           { return Command{Kind: CmdSpawnAgent} }
func RemoveAgent() Command          { return Command{Kind: CmdRemoveAgent} }
func Quit() Command                 { return Command{Kind: CmdQuit} }

func (c Command) String() string {
	switch c.Kind {
	case CmdMovePOI:
		return fmt.Sprintf("%s(%s)", c.Kind, c.Dir)
	case CmdSelectPOI:
		return fmt.Sprintf("%s(%d)", c.Kind, c.Index)
	}
	return c.Kind.String()
}

// Apply dispatches cmd against the mutation API. Invalid commands are no-ops.
// It reports whether cmd asked the loop to stop.
func (w *World) Apply(cmd Command) (quit bool) {
	switch cmd.Kind {
	case CmdMovePOI:
		w.MovePOI(cmd.Dir)
	case CmdSelectPOI:
		w.SelectPOI(cmd.Index)
	case CmdTogglePOI:
		w.TogglePOI()
	case CmdAddPOI:
		w.SpawnPOI(w.arena.Center())
	case CmdRemovePOI:
		w.RemovePOI()
	case CmdSpawnAgent:
		w.SpawnAgent()
	case CmdRemoveAgent:
		w.RemoveLastAgent()
	case CmdQuit:
		return true
	}
	return false
}
