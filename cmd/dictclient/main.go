package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/NivBraz/dictionary-service/internal/models"
	"github.com/NivBraz/dictionary-service/pkg/client"
)

func main() {
	host := flag.String("host", "localhost", "server hostname")
	port := flag.Int("port", 4444, "server port")
	timeout := flag.Duration("timeout", 5*time.Second, "connection timeout")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	address := net.JoinHostPort(*host, strconv.Itoa(*port))
	c, err := client.Dial(ctx, address)
	if err != nil {
		log.Fatalf("Failed to connect to dictionary server: %v", err)
	}
	defer c.Close()

	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	if interactive {
		fmt.Printf("Connected to dictionary server at %s\n", address)
		fmt.Println("Commands: QUERY:word  ADD:word:m1;m2  REMOVE:word  APPEND:word:m  UPDATE:word:old:new  EXIT")
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		if interactive {
			fmt.Print("> ")
		}
		if !scanner.Scan() {
			break
		}

		request := strings.TrimSpace(scanner.Text())
		if request == "" {
			continue
		}
		if strings.EqualFold(request, models.ExitCommand) {
			break
		}

		response, err := c.SendRequest(request)
		if err != nil {
			log.Fatalf("Connection lost: %v", err)
		}
		printResponse(response)
	}

	if err := scanner.Err(); err != nil {
		log.Printf("Error reading input: %v", err)
	}
}

func printResponse(response string) {
	switch {
	case strings.HasPrefix(response, "Error:"):
		color.New(color.FgRed).Println(response)
	case strings.Contains(response, "but error saving file"):
		color.New(color.FgYellow).Println(response)
	case strings.HasPrefix(response, "Success:"):
		color.New(color.FgGreen).Println(response)
	default:
		fmt.Println(response)
	}
}
