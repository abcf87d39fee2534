package user

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type Env struct {
	Users []string
}

func NewUserEnv() *Env {
	return &Env{}
}

// Populate reads the allow-list from USERS_FILE_PATH (one user per line)
// and then AUTHORIZED_USERS (comma-separated), the latter taking precedence.
func (u *Env) Populate() error {
	if path := os.Getenv("USERS_FILE_PATH"); path != "" {
		file, err := os.Open(filepath.Clean(path))
		if err != nil {
			return fmt.Errorf("unable to read users file: %w", err)
		}
		defer func() { _ = file.Close() }()

		scanner := bufio.NewScanner(file)
		scanner.Split(bufio.ScanLines)
		for scanner.Scan() {
			if s := strings.Trim(scanner.Text(), " "); s != "" {
				u.Users = append(u.Users, s)
			}
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("unable to read users file: %w", err)
		}
	}

	if users := os.Getenv("AUTHORIZED_USERS"); users != "" {
		ss := strings.Split(users, ",")
		aux := make([]string, 0, len(ss))

		for _, entry := range ss {
			if s := strings.Trim(entry, " "); s != "" {
				aux = append(aux, s)
			}
		}
		u.Users = aux
	}

	return nil
}

// Restricted reports whether an allow-list is in force.
func (u *Env) Restricted() bool {
	return u != nil && len(u.Users) > 0
}

func (u *Env) Allowed(user string) bool {
	for _, s := range u.Users {
		if s == user {
			return true
		}
	}
	return false
}
