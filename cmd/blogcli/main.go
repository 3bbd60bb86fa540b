package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"runtime/debug"

	"github.com/common-nighthawk/go-figure"

	"github.com/darshvaidya/go-blog-client/api"
	"github.com/darshvaidya/go-blog-client/auth"
	"github.com/darshvaidya/go-blog-client/internal/config"
	"github.com/darshvaidya/go-blog-client/rest"
	"github.com/darshvaidya/go-blog-client/session"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("Error: %s\n", err)
	}
}

func run(args []string) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	displayAppname(c.GetAppName())

	store, err := session.NewFileStore(c.GetSessionFile())
	if err != nil {
		return err
	}

	executor := rest.NewExecutor(c.GetBaseURL(), &http.Client{Timeout: c.GetHTTPTimeout()})
	controller := auth.NewController(executor, store, nil)
	client := api.NewClient(rest.NewCoordinator(executor, store, nil))

	if len(args) == 0 {
		return usage()
	}

	ctx := context.Background()
	switch args[0] {
	case "login":
		if len(args) != 3 {
			return usage()
		}
		user, err := controller.Login(ctx, auth.LoginInput{Email: args[1], Password: args[2]})
		if err != nil {
			return err
		}
		fmt.Printf("Logged in as %s (%s)\n", user.Email, user.Role)

	case "register":
		if len(args) != 3 {
			return usage()
		}
		user, err := controller.Register(ctx, auth.RegisterInput{Email: args[1], Password: args[2]})
		if err != nil {
			return err
		}
		fmt.Printf("Registered %s (%s)\n", user.Email, user.Role)

	case "logout":
		if err := controller.Logout(ctx); err != nil {
			return err
		}
		fmt.Println("Logged out")

	case "whoami":
		current, err := controller.CurrentSession(ctx)
		if err != nil {
			return err
		}
		if !current.Authenticated() {
			fmt.Println("Not logged in")
			return nil
		}
		fmt.Printf("%s (%s)\n", current.User.Email, current.User.Role)

	case "posts":
		page, err := client.ListPosts(ctx, 1, 10)
		if err != nil {
			return err
		}
		for _, post := range page.Data {
			fmt.Printf("%-36s  %-9s  %s\n", post.ID, post.Status, post.Title)
		}
		fmt.Printf("page %d/%d (%d total)\n", page.Meta.Page, page.Meta.TotalPages, page.Meta.Total)

	case "users":
		page, err := client.ListUsers(ctx, 1, 10)
		if err != nil {
			return err
		}
		for _, user := range page.Data {
			fmt.Printf("%-36s  %-7s  %s\n", user.ID, user.Role, user.Email)
		}

	default:
		return usage()
	}

	return nil
}

func usage() error {
	return errors.New("usage: blogcli login <email> <password> | register <email> <password> | logout | whoami | posts | users")
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
