// Package main provides a CLI tool for generating logvault admin tokens.
// The printed hash goes into ADMIN_API_TOKEN; the token itself is sent in
// the X-Admin-Token header and never stored on the server.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"logvault/pkg/secrets"
)

type tokenOutput struct {
	Token string            `json:"token,omitempty"`
	Hash  string            `json:"hash"`
	Usage map[string]string `json:"usage"`
}

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}
	if err := run(os.Args[1], os.Args[2:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		if errors.Is(err, errUnknownCommand) {
			printUsage(os.Stderr)
		}
		os.Exit(1)
	}
}

var errUnknownCommand = errors.New("unknown command")

func run(command string, args []string, out io.Writer) error {
	switch command {
	case "admin":
		fs := flag.NewFlagSet("admin", flag.ContinueOnError)
		jsonOutput := fs.Bool("json", false, "Output as JSON")
		if err := fs.Parse(args); err != nil {
			return err
		}
		token, err := secrets.Generate()
		if err != nil {
			return err
		}
		hash, err := secrets.Hash(token)
		if err != nil {
			return err
		}
		return printToken(out, token, hash, *jsonOutput)
	case "hash":
		fs := flag.NewFlagSet("hash", flag.ContinueOnError)
		token := fs.String("token", "", "Existing token to hash")
		jsonOutput := fs.Bool("json", false, "Output as JSON")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if *token == "" {
			return errors.New("-token is required")
		}
		hash, err := secrets.Hash(*token)
		if err != nil {
			return err
		}
		return printToken(out, "", hash, *jsonOutput)
	case "help", "-h", "--help":
		printUsage(out)
		return nil
	default:
		return fmt.Errorf("%w: %s", errUnknownCommand, command)
	}
}

func printToken(out io.Writer, token, hash string, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(tokenOutput{
			Token: token,
			Hash:  hash,
			Usage: map[string]string{
				"server": "ADMIN_API_TOKEN=<hash>",
				"header": "X-Admin-Token: <token>",
			},
		})
	}

	fmt.Fprintln(out, "Admin Token")
	fmt.Fprintln(out, "===========")
	if token != "" {
		fmt.Fprintf(out, "Token: %s\n", token)
	}
	fmt.Fprintf(out, "Hash:  %s\n", hash)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Usage:")
	fmt.Fprintf(out, "  ADMIN_API_TOKEN='%s'\n", hash)
	fmt.Fprintln(out, "  curl -X POST -H \"X-Admin-Token: <token>\" http://localhost:8080/v1/logs/clear")
	return nil
}

func printUsage(out io.Writer) {
	fmt.Fprintln(out, `tokengen - Generate logvault admin tokens

Usage:
  tokengen <command> [flags]

Commands:
  admin     Generate a new admin token and its bcrypt hash
  hash      Hash an existing token

Examples:
  # New token; put the hash in ADMIN_API_TOKEN
  tokengen admin

  # Hash a token you already distribute
  tokengen hash -token "my-existing-token"

  # Output as JSON
  tokengen admin -json`)
}
