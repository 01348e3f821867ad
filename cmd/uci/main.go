package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"pelican-engine/engine"
	"pelican-engine/game"
	gm "pelican-engine/pelicanmg"
)

const (
	engineName   = "PelicanEngine 1.0"
	engineAuthor = "PelicanEngine authors"
)

type uciState struct {
	game      *game.Game
	log       zerolog.Logger
	searching sync.WaitGroup
}

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	st := &uciState{game: game.NewStandard(), log: log}
	st.game.Searcher().Info = os.Stdout
	st.loop()
}

func (st *uciState) loop() {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		tokens := strings.Fields(scanner.Text())
		if len(tokens) == 0 {
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "uci":
			fmt.Println("id name", engineName)
			fmt.Println("id author", engineAuthor)
			fmt.Println("option name UCI_Chess960 type check default false")
			fmt.Println("uciok")
		case "isready":
			st.searching.Wait()
			fmt.Println("readyok")
		case "ucinewgame":
			st.searching.Wait()
			st.game = game.NewStandard()
			st.game.Searcher().Info = os.Stdout
		case "position":
			st.searching.Wait()
			st.handlePosition(tokens[1:])
		case "go":
			st.searching.Wait()
			st.handleGo(tokens[1:])
		case "stop":
			st.game.StopSearch()
			st.searching.Wait()
		case "eval":
			fmt.Println("info string static eval", st.game.Evaluate())
		case "d":
			fmt.Println("info string position", st.game.FEN())
		case "setoption":
			// UCI_Chess960 only affects castling notation, which the
			// board already derives from the position itself.
		case "quit":
			st.game.StopSearch()
			st.searching.Wait()
			return
		default:
			st.log.Warn().Str("command", tokens[0]).Msg("unknown command")
		}
	}
}

func (st *uciState) handlePosition(args []string) {
	if len(args) == 0 {
		st.log.Error().Msg("malformed position command")
		return
	}

	var movesAt int
	switch strings.ToLower(args[0]) {
	case "startpos":
		st.game = game.NewStandard()
		movesAt = 1
	case "fen":
		end := len(args)
		for i, tok := range args[1:] {
			if strings.ToLower(tok) == "moves" {
				end = i + 1
				break
			}
		}
		g, err := game.NewFromFEN(strings.Join(args[1:end], " "))
		if err != nil {
			st.log.Error().Err(err).Msg("invalid fen position")
			return
		}
		st.game = g
		movesAt = end
	default:
		st.log.Error().Str("subcommand", args[0]).Msg("invalid position subcommand")
		return
	}
	st.game.Searcher().Info = os.Stdout

	if movesAt >= len(args) || strings.ToLower(args[movesAt]) != "moves" {
		return
	}
	for _, moveStr := range args[movesAt+1:] {
		if _, err := st.game.ApplyUCIMove(strings.ToLower(moveStr)); err != nil {
			st.log.Error().Err(err).Str("move", moveStr).Str("fen", st.game.FEN()).Msg("move rejected")
			return
		}
	}
}

func (st *uciState) handleGo(args []string) {
	var limits engine.Limits
	for i := 0; i < len(args); i++ {
		switch strings.ToLower(args[i]) {
		case "infinite":
			limits.Infinite = true
		case "depth":
			i++
			limits.Depth = atoiAt(args, i, st.log)
		case "movetime":
			i++
			limits.MoveTime = atoiAt(args, i, st.log)
		case "wtime":
			i++
			limits.WhiteTime = atoiAt(args, i, st.log)
		case "btime":
			i++
			limits.BlackTime = atoiAt(args, i, st.log)
		case "winc":
			i++
			limits.WhiteIncrement = atoiAt(args, i, st.log)
		case "binc":
			i++
			limits.BlackIncrement = atoiAt(args, i, st.log)
		default:
			st.log.Warn().Str("option", args[i]).Msg("unknown go option")
		}
	}
	if !limits.Infinite && limits.Depth == 0 && limits.MoveTime == 0 &&
		limits.WhiteTime == 0 && limits.BlackTime == 0 {
		limits.Depth = engine.MaxDepth
	}

	st.searching.Add(1)
	go func() {
		defer st.searching.Done()
		result, err := st.game.Search(limits)
		if err != nil {
			if errors.Is(err, engine.ErrNoLegalMoves) {
				fmt.Println("bestmove", gm.NullMove.String())
				return
			}
			st.log.Error().Err(err).Msg("search failed")
			return
		}
		fmt.Println("bestmove", result.BestMove.String())
	}()
}

func atoiAt(args []string, i int, log zerolog.Logger) int {
	if i >= len(args) {
		log.Error().Msg("missing go option value")
		return 0
	}
	v, err := strconv.Atoi(args[i])
	if err != nil {
		log.Error().Str("value", args[i]).Msg("bad go option value")
		return 0
	}
	return v
}
