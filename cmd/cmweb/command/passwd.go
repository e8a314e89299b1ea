// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/momeni/carmaint/pkg/adapter/config"
	"github.com/momeni/carmaint/pkg/adapter/hash/scram"
	"github.com/spf13/cobra"
)

var passwdWrite bool

var passwdCmd = &cobra.Command{
	Use:   "passwd <username>",
	Short: "Hash the password of a console user",
	Long: `Read a password from the first line of the standard input and
print its hash, as expected by the console.users setting of the config
file. The hashing scheme is chosen by the console.auth-method setting.
With the -w flag, the user is added (or its password is replaced) in
the config file instead.`,
	RunE: passwd,
	Args: cobra.ExactArgs(1),
}

func passwd(cmd *cobra.Command, args []string) error {
	user := args[0]
	if user == "" || strings.Contains(user, ":") {
		return fmt.Errorf("invalid username %q", user)
	}
	c, err := config.LoadFile(cfgPath)
	if err != nil {
		return fmt.Errorf("config.LoadFile(%q): %w", cfgPath, err)
	}
	sc := bufio.NewScanner(cmd.InOrStdin())
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return fmt.Errorf("reading password: %w", err)
		}
		return errors.New("reading password: no input")
	}
	pass := strings.TrimRight(sc.Text(), "\r")
	hash, err := c.Console.Mechanism().Hash(pass, "", scram.DefaultIters)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	if !passwdWrite {
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	}
	if c.Console.Users == nil {
		c.Console.Users = make(map[string]string)
	}
	c.Console.Users[user] = hash
	if err := config.Save(cfgPath, c); err != nil {
		return fmt.Errorf("config.Save(%q): %w", cfgPath, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "user %q is saved in %s\n", user, cfgPath)
	return nil
}

func init() {
	passwdCmd.Flags().BoolVarP(&passwdWrite, "write", "w", false,
		"save the user in the config file",
	)
	rootCmd.AddCommand(passwdCmd)
}
