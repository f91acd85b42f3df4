// Copyright 2024 The figkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command figstyle manages figkit style presets.
//
// Custom presets live as YAML files under the user configuration
// directory and shadow bundled presets of the same name.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"os/exec"
	"sort"
	"strconv"
	"strings"

	"github.com/figkit/figkit/style"
	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var store *style.Store

func main() {
	log.SetPrefix("figstyle: ")
	log.SetFlags(0)

	store = style.NewStore()

	root := &cobra.Command{
		Use:           "figstyle",
		Short:         "manage figkit style presets",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(listCmd(), showCmd(), createCmd(), editCmd(), deleteCmd(), defaultCmd())
	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list bundled and custom presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			builtin, custom := store.List()
			def := store.Default()
			for _, name := range builtin {
				fmt.Println(tagged(name, def, "bundled"))
			}
			for _, name := range custom {
				fmt.Println(tagged(name, def, "custom"))
			}
			return nil
		},
	}
}

func tagged(name, def, kind string) string {
	s := fmt.Sprintf("%-16s %s", name, kind)
	if name == def {
		s += " (default)"
	}
	return s
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "print a preset's parameter tables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(args[0])
			if err != nil {
				return err
			}
			b, err := yaml.Marshal(p.Tables)
			if err != nil {
				return err
			}
			os.Stdout.Write(b)
			return nil
		},
	}
}

func createCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "create a custom preset by prompting from the plain preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			plain, err := store.Load(style.Plain)
			if err != nil {
				return err
			}
			p := &style.Preset{Name: name, Tables: promptTables(plain)}
			if err := store.Save(p); err != nil {
				return err
			}
			fmt.Printf("saved %s\n", name)
			return nil
		},
	}
}

// promptTables walks the plain preset's tables in sorted order and
// asks for each parameter. An empty answer keeps the plain value;
// "same as <param>" answers are stored verbatim and resolve against
// the related parameter at plot time.
func promptTables(plain *style.Preset) map[string]map[string]interface{} {
	in := bufio.NewScanner(os.Stdin)
	out := make(map[string]map[string]interface{})

	types := make([]string, 0, len(plain.Tables))
	for typ := range plain.Tables {
		types = append(types, typ)
	}
	sort.Strings(types)
	for _, typ := range types {
		fmt.Printf("%s:\n", typ)
		params := make([]string, 0, len(plain.Tables[typ]))
		for param := range plain.Tables[typ] {
			params = append(params, param)
		}
		sort.Strings(params)
		table := make(map[string]interface{}, len(params))
		for _, param := range params {
			def := plain.Tables[typ][param]
			fmt.Printf("  %s [%v]: ", param, def)
			if !in.Scan() {
				table[param] = def
				continue
			}
			table[param] = parseAnswer(strings.TrimSpace(in.Text()), def)
		}
		out[typ] = table
	}
	return out
}

// parseAnswer converts a prompt answer to the same kind of value as
// the plain default where it can: bools and numbers stay typed,
// everything else (colors, "cycle", "same as ..." sentinels) stays a
// string.
func parseAnswer(answer string, def interface{}) interface{} {
	if answer == "" {
		return def
	}
	if b, err := strconv.ParseBool(answer); err == nil {
		return b
	}
	if n, err := strconv.ParseFloat(answer, 64); err == nil {
		return n
	}
	return answer
}

func editCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <name>",
		Short: "edit a custom preset in $EDITOR",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			p, err := store.Load(name)
			if err != nil {
				return err
			}
			// Editing a bundled preset first materializes it as a
			// custom file, which then shadows the bundled one.
			if _, custom := store.List(); !contains(custom, name) {
				if err := store.Save(p); err != nil {
					return err
				}
			}
			path := store.CustomPath(name)

			editor := os.Getenv("EDITOR")
			if editor == "" {
				editor = "vi"
			}
			words, err := shellquote.Split(editor)
			if err != nil {
				return fmt.Errorf("bad $EDITOR: %v", err)
			}
			words = append(words, path)
			c := exec.Command(words[0], words[1:]...)
			c.Stdin, c.Stdout, c.Stderr = os.Stdin, os.Stdout, os.Stderr
			if err := c.Run(); err != nil {
				return err
			}
			store.Reload()
			if _, err := store.Load(name); err != nil {
				return fmt.Errorf("edited file does not load: %v", err)
			}
			return nil
		},
	}
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "delete a custom preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return store.Delete(args[0])
		},
	}
}

func defaultCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "default [<name>]",
		Short: "print or set the default preset",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Println(store.Default())
				return nil
			}
			return store.SetDefault(args[0])
		},
	}
}
