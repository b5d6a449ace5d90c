package cli

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/mswiatek/scholarfolio/internal/client/identity"
)

type sessionFile struct {
	Principal    string `json:"principal"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func sessionPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".scholarfolio", "session.json"), nil
}

// restoreSession ends the identity's initializing window: with a stored
// session the client comes up signed in, otherwise anonymous. A broken
// session file is treated as no session.
func (a *App) restoreSession() {
	path, err := sessionPath()
	if err != nil {
		a.idctx.MarkResolved()
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		a.idctx.MarkResolved()
		return
	}

	var s sessionFile
	if err := json.Unmarshal(data, &s); err != nil || s.AccessToken == "" {
		a.idctx.MarkResolved()
		return
	}

	a.idctx.SetIdentity(&identity.Identity{
		Principal:    s.Principal,
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
	})
}

func (a *App) persistSession() {
	id, ok := a.idctx.Identity()
	if !ok {
		return
	}

	path, err := sessionPath()
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return
	}

	data, err := json.Marshal(sessionFile{
		Principal:    id.Principal,
		AccessToken:  id.AccessToken,
		RefreshToken: id.RefreshToken,
	})
	if err != nil {
		return
	}
	_ = os.WriteFile(path, data, 0o600)
}

func (a *App) dropSession() {
	if path, err := sessionPath(); err == nil {
		_ = os.Remove(path)
	}
}
