package shell

import (
	"errors"

	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"

	"github.com/domino14/tumbledrop/config"
)

func getShell(L *lua.LState) *ShellController {
	shell := L.GetGlobal("tumbledrop_shell")
	ud, ok := shell.(*lua.LUserData)
	if !ok {
		panic("luserdata not right type")
	}
	sc, ok := ud.Value.(*ShellController)
	if !ok {
		panic("shellcontroller not right type")
	}
	return sc
}

// luaCommand runs a shell command with the string argument given from
// lua and pushes its output, or an ERROR string.
func luaCommand(name string, run func(*ShellController, *shellcmd) (*Response, error)) lua.LGFunction {
	return func(L *lua.LState) int {
		lv := L.OptString(1, "")
		sc := getShell(L)
		cmd, err := extractFields(name + " " + lv)
		if err != nil {
			log.Err(err).Msg("error-parsing-" + name)
			L.Push(lua.LString("ERROR: " + err.Error()))
			return 1
		}
		r, err := run(sc, cmd)
		if err != nil {
			log.Err(err).Msg("error-executing-" + name)
			L.Push(lua.LString("ERROR: " + err.Error()))
			return 1
		}
		L.Push(lua.LString(r.message))
		// return number of results pushed to stack.
		return 1
	}
}

// Score pushes both players' total scores.
func Score(L *lua.LState) int {
	sc := getShell(L)
	L.Push(lua.LNumber(sc.game.PointsFor(0)))
	L.Push(lua.LNumber(sc.game.PointsFor(1)))
	return 2
}

// GameOver pushes whether the current game is finished.
func GameOver(L *lua.LState) int {
	sc := getShell(L)
	L.Push(lua.LBool(sc.game.IsGameOver()))
	return 1
}

// Best searches the current position and pushes the best slot, 1-based,
// and its value.
func Best(L *lua.LState) int {
	sc := getShell(L)
	depth := L.OptInt(1, sc.config.GetInt(config.ConfigMaxDepth))
	if sc.game.IsGameOver() {
		L.Push(lua.LNil)
		return 1
	}
	if _, err := sc.table(); err != nil {
		log.Err(err).Msg("error-creating-table")
		L.Push(lua.LNil)
		return 1
	}
	ml := sc.bestMoves(depth)
	L.Push(lua.LNumber(ml.PrincipalSlot() + 1))
	L.Push(lua.LNumber(ml.PrincipalValue()))
	return 2
}

func (sc *ShellController) script(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("need arguments for script")
	}
	filepath := cmd.args[0]

	L := lua.NewState()
	defer L.Close()

	lsc := L.NewUserData()
	lsc.Value = sc

	L.SetGlobal("tumbledrop_shell", lsc)
	L.SetGlobal("tumbledrop_new", L.NewFunction(luaCommand("new", (*ShellController).newGame)))
	L.SetGlobal("tumbledrop_drop", L.NewFunction(luaCommand("drop", (*ShellController).drop)))
	L.SetGlobal("tumbledrop_undo", L.NewFunction(luaCommand("undo", (*ShellController).undo)))
	L.SetGlobal("tumbledrop_opening", L.NewFunction(luaCommand("opening", (*ShellController).opening)))
	L.SetGlobal("tumbledrop_show", L.NewFunction(luaCommand("show", (*ShellController).show)))
	L.SetGlobal("tumbledrop_predict", L.NewFunction(luaCommand("predict", (*ShellController).predict)))
	L.SetGlobal("tumbledrop_load", L.NewFunction(luaCommand("load", (*ShellController).load)))
	L.SetGlobal("tumbledrop_save", L.NewFunction(luaCommand("save", (*ShellController).save)))
	L.SetGlobal("tumbledrop_score", L.NewFunction(Score))
	L.SetGlobal("tumbledrop_gameover", L.NewFunction(GameOver))
	L.SetGlobal("tumbledrop_best", L.NewFunction(Best))

	if err := L.DoFile(filepath); err != nil {
		log.Err(err).Msg("there was a error")
		return nil, err
	}
	return msg(""), nil
}
