package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/marcus/inlinefields/internal/config"
)

func isSettingsCommand(name string) bool {
	return name == "fields" || name == "position"
}

// runSettings edits the config file from the command line:
//
//	fields list
//	fields add <field> <folder>
//	fields set <field> <folder>
//	fields rm <field>
//	position <mode>
func runSettings(out io.Writer, path string, cfg *config.Config, args []string) error {
	switch args[0] {
	case "position":
		if len(args) != 2 {
			return errors.New("usage: position left|right|replace|none")
		}
		if err := cfg.SetCheckboxPosition(args[1]); err != nil {
			return err
		}
		if err := config.SaveTo(path, cfg); err != nil {
			return err
		}
		fmt.Fprintf(out, "checkbox position: %s\n", cfg.Checkbox.Position)
		return nil

	case "fields":
		return runFields(out, path, cfg, args[1:])
	}
	return fmt.Errorf("unknown command %q", args[0])
}

func runFields(out io.Writer, path string, cfg *config.Config, args []string) error {
	if len(args) == 0 || args[0] == "list" {
		if len(cfg.Autocomplete) == 0 {
			fmt.Fprintln(out, "no autocomplete fields configured")
			return nil
		}
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "FIELD\tFOLDER")
		for _, ac := range cfg.Autocomplete {
			folder := ac.Folder
			if folder == "" {
				folder = "(vault)"
			}
			fmt.Fprintf(tw, "%s\t%s\n", ac.Field, folder)
		}
		return tw.Flush()
	}

	var err error
	switch args[0] {
	case "add", "set":
		if len(args) != 3 {
			return fmt.Errorf("usage: fields %s <field> <folder>", args[0])
		}
		if args[0] == "add" {
			err = cfg.AddAutocomplete(args[1], args[2])
		} else {
			err = cfg.UpdateAutocomplete(args[1], args[2])
		}
	case "rm":
		if len(args) != 2 {
			return errors.New("usage: fields rm <field>")
		}
		err = cfg.RemoveAutocomplete(args[1])
	default:
		return fmt.Errorf("unknown fields command %q", args[0])
	}
	if err != nil {
		return err
	}
	if err := config.SaveTo(path, cfg); err != nil {
		return err
	}
	fmt.Fprintf(out, "saved %s\n", path)
	return nil
}
