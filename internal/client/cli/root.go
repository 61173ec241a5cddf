package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	s := ""
	if a.userName != "" {
		s = a.userName
	} else if a.isLoggedIn() {
		s = "session"
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.client.Close(); err != nil {
			log.Println(err.Error())
		}
	}()
	a.Root(ctx)
}

func (a *App) Root(ctx context.Context) {

	log.Println("Welcome to blog CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("blog %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Println("Available commands: list, get <id>, post, update <id>, delete <id>, whoami, logout, exit")
			} else {
				fmt.Println("Available commands: register, login, list, get <id>, exit")
			}

		case "register":
			a.Register(ctx)
		case "login":
			a.Login(ctx)
		case "logout":
			a.Logout(ctx)
		case "whoami":
			a.WhoAmI(ctx)
		case "post":
			a.createPost(ctx)
		case "get":
			a.getPost(ctx, args)
		case "update":
			a.updatePost(ctx, args)
		case "delete":
			a.deletePost(ctx, args)
		case "list":
			a.list(ctx, args)
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}

}
