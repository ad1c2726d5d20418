package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cardroom/zhajinhua/internal/client"
	"github.com/cardroom/zhajinhua/internal/game"
	"github.com/cardroom/zhajinhua/internal/server"
)

// JoinCmd connects to a running server and plays interactively.
type JoinCmd struct {
	Server string `kong:"default='ws://localhost:8080/ws',help='WebSocket server URL'"`
	Room   string `kong:"default='main',help='Room to join'"`
	Name   string `kong:"default='',help='Display name (defaults to $USER or \"Player\")'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
}

func (c *JoinCmd) Run() error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		name = os.Getenv("USER")
	}
	if name == "" {
		name = "Player"
	}

	logger := setupLogger("warn", c.Debug)
	cl := client.New(c.Server, c.Room, logger)

	cl.OnUpdate(func(view server.StateUpdateData) {
		fmt.Println()
		fmt.Println(client.RenderView(view))
		if view.Phase == "Betting" && view.YourSeat == view.TurnIndex {
			fmt.Print("[l]ook [c]all [r]aise [f]old [v]s <seat> > ")
		}
	})
	cl.OnError(func(data server.ErrorData) {
		fmt.Printf("\nserver: %s\n", data.Message)
	})

	if err := cl.Connect(); err != nil {
		return err
	}
	defer func() { _ = cl.Disconnect() }()

	if err := cl.Join(name); err != nil {
		return err
	}

	fmt.Println(client.Title())
	fmt.Printf("\nJoined room %q as %s. Type 'q' to leave.\n", c.Room, name)

	inputDone := make(chan struct{})
	go func() {
		defer close(inputDone)
		reader := bufio.NewReader(os.Stdin)
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				return
			}
			if quit := handleInput(cl, strings.TrimSpace(strings.ToLower(line))); quit {
				return
			}
		}
	}()

	select {
	case <-cl.Done():
		fmt.Println("\nDisconnected from server.")
	case <-inputDone:
	}
	return nil
}

func handleInput(cl *client.Client, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	var action game.Action
	target := game.NoTarget
	switch fields[0] {
	case "l", "look":
		action = game.Look
	case "c", "call":
		action = game.Call
	case "r", "raise":
		action = game.Raise
	case "f", "fold":
		action = game.Fold
	case "v", "vs", "compare":
		if len(fields) < 2 {
			fmt.Println("compare needs a seat number, e.g. 'vs 2'")
			return false
		}
		seat, err := strconv.Atoi(fields[1])
		if err != nil {
			fmt.Println("bad seat number:", fields[1])
			return false
		}
		action = game.Compare
		target = seat
	case "q", "quit":
		return true
	default:
		fmt.Println("unknown command:", fields[0])
		return false
	}

	if err := cl.SendAction(action, target); err != nil {
		fmt.Println("send failed:", err)
	}
	return false
}
