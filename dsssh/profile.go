/*
© 2024–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

// Package dsssh is the remote-execution pack: remote_shell and
// remote_filesystem table-valued functions driving commands over SSH via
// golang.org/x/crypto/ssh, with connection defaults decoded from the
// connection URL's profile segment ("sqlite:remote:<profile>").
package dsssh

import (
	"os"
	"path"
	"time"

	"golang.org/x/crypto/ssh"
	"gopkg.in/yaml.v2"

	"github.com/beeql/beeql/parlos"
	"github.com/beeql/beeql/pcode"
)

// Profile is the YAML-decoded form of a connection URL's profile segment:
// defaults consulted when a remote_shell/remote_filesystem call omits its
// own host, user, key path or port.
type Profile struct {
	User    string `yaml:"user"`
	KeyPath string `yaml:"key_path"`
	Port    int    `yaml:"port"`
	Timeout int    `yaml:"timeout_seconds"`
}

// DefaultProfile is used when the connection URL carries no profile
// segment at all (an empty string).
func DefaultProfile() Profile {
	return Profile{User: "root", KeyPath: path.Join(parlos.UserHomeDir(), ".ssh/id_rsa"), Port: 22, Timeout: 30}
}

// ParseProfile decodes s as YAML into a Profile, filling any field the
// document omits from [DefaultProfile]. An empty s returns
// [DefaultProfile] unchanged.
func ParseProfile(s string) (p Profile, err error) {
	p = DefaultProfile()
	if s == "" {
		return p, nil
	}
	if err = yaml.Unmarshal([]byte(s), &p); err != nil {
		return Profile{}, pcode.Newf(pcode.KindInvalid, "decode ssh profile: %w", err)
	}
	if p.Port == 0 {
		p.Port = 22
	}
	if p.Timeout == 0 {
		p.Timeout = 30
	}
	return p, nil
}

// clientConfig builds an [ssh.ClientConfig] from p. Host key verification
// is intentionally left to the caller via a provided [ssh.HostKeyCallback];
// this pack does not pin host keys itself.
func (p Profile) clientConfig(hostKeyCallback ssh.HostKeyCallback) (*ssh.ClientConfig, error) {
	keyBytes, err := os.ReadFile(p.KeyPath)
	if err != nil {
		return nil, pcode.Newf(pcode.KindInvalid, "read ssh private key %q: %w", p.KeyPath, err)
	}
	signer, err := ssh.ParsePrivateKey(keyBytes)
	if err != nil {
		return nil, pcode.Newf(pcode.KindInvalid, "parse ssh private key %q: %w", p.KeyPath, err)
	}
	return &ssh.ClientConfig{
		User:            p.User,
		Auth:            []ssh.AuthMethod{ssh.PublicKeys(signer)},
		HostKeyCallback: hostKeyCallback,
		Timeout:         time.Duration(p.Timeout) * time.Second,
	}, nil
}
