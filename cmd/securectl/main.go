// Command securectl exercises securecore from the command line: sealing
// and opening payloads, integrity tags, key generation, and signatures.
// The context key comes from the environment (see the config package);
// plaintext and envelopes move through stdin and stdout so the tool
// composes in pipelines.
//
// Usage:
//
//	securectl keygen [-scheme RSA-PSS-SHA256|ML-DSA-65]
//	securectl encrypt < plaintext > sealed.json
//	securectl decrypt < sealed.json > plaintext
//	securectl tag < data
//	securectl verify-tag -tag <base64url> < data
//	securectl sign -key private.pem < message
//	securectl verify -key public.pem -sig <base64url> < message
//	securectl health
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	securecore "github.com/fedshare/securecore-go"
	"github.com/fedshare/securecore-go/config"
	"github.com/fedshare/securecore-go/healthmon"
)

func main() {
	if len(os.Args) < 2 {
		fatal("usage: securectl <command> [args]")
	}

	var err error
	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "keygen":
		err = keygen(args)
	case "encrypt":
		err = encrypt(args)
	case "decrypt":
		err = decrypt(args)
	case "tag":
		err = tag(args)
	case "verify-tag":
		err = verifyTag(args)
	case "sign":
		err = sign(args)
	case "verify":
		err = verify(args)
	case "health":
		err = health(args)
	default:
		fatal("unknown command: %s", cmd)
	}
	if err != nil {
		fatal("%v", err)
	}
}

// newContext builds a SecurityContext from environment configuration.
func newContext() (*securecore.SecurityContext, error) {
	cfg, err := config.Load(config.WithDotenv(".env"))
	if err != nil {
		return nil, err
	}
	return cfg.NewContext()
}

func keygen(args []string) error {
	fs := flag.NewFlagSet("keygen", flag.ExitOnError)
	scheme := fs.String("scheme", string(securecore.SchemeRSAPSS), "signature scheme")
	fs.Parse(args)

	kp, err := securecore.GenerateKeyPair(securecore.SignatureScheme(*scheme))
	if err != nil {
		return err
	}

	return json.NewEncoder(os.Stdout).Encode(kp.Export())
}

func encrypt(args []string) error {
	fs := flag.NewFlagSet("encrypt", flag.ExitOnError)
	fs.Parse(args)

	ctx, err := newContext()
	if err != nil {
		return err
	}
	defer ctx.Close()

	plaintext, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	sealed, err := ctx.Encrypt(plaintext)
	if err != nil {
		return err
	}
	return json.NewEncoder(os.Stdout).Encode(sealed)
}

func decrypt(args []string) error {
	fs := flag.NewFlagSet("decrypt", flag.ExitOnError)
	fs.Parse(args)

	ctx, err := newContext()
	if err != nil {
		return err
	}
	defer ctx.Close()

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	var sealed securecore.SealedMessage
	if err := json.Unmarshal(data, &sealed); err != nil {
		return fmt.Errorf("parse sealed message: %w", err)
	}

	plaintext, err := ctx.Decrypt(&sealed)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(plaintext)
	return err
}

func tag(args []string) error {
	fs := flag.NewFlagSet("tag", flag.ExitOnError)
	fs.Parse(args)

	ctx, err := newContext()
	if err != nil {
		return err
	}
	defer ctx.Close()

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	t, err := ctx.GenerateTag(data)
	if err != nil {
		return err
	}
	return json.NewEncoder(os.Stdout).Encode(map[string]string{"tag": t.String()})
}

func verifyTag(args []string) error {
	fs := flag.NewFlagSet("verify-tag", flag.ExitOnError)
	encoded := fs.String("tag", "", "integrity tag, base64url")
	fs.Parse(args)
	if *encoded == "" {
		return fmt.Errorf("missing -tag")
	}

	ctx, err := newContext()
	if err != nil {
		return err
	}
	defer ctx.Close()

	t, err := securecore.ParseIntegrityTag(*encoded)
	if err != nil {
		return err
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	return json.NewEncoder(os.Stdout).Encode(map[string]bool{"valid": ctx.VerifyTag(data, t)})
}

func sign(args []string) error {
	fs := flag.NewFlagSet("sign", flag.ExitOnError)
	keyPath := fs.String("key", "", "private key PEM file")
	fs.Parse(args)
	if *keyPath == "" {
		return fmt.Errorf("missing -key")
	}

	ctx, err := newContext()
	if err != nil {
		return err
	}
	defer ctx.Close()

	keyPEM, err := os.ReadFile(*keyPath)
	if err != nil {
		return err
	}

	msg, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	sig, err := ctx.Sign(keyPEM, msg)
	if err != nil {
		return err
	}
	return json.NewEncoder(os.Stdout).Encode(map[string]string{"signature": sig.String()})
}

func verify(args []string) error {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	keyPath := fs.String("key", "", "public key PEM file")
	encoded := fs.String("sig", "", "signature, base64url")
	fs.Parse(args)
	if *keyPath == "" || *encoded == "" {
		return fmt.Errorf("missing -key or -sig")
	}

	ctx, err := newContext()
	if err != nil {
		return err
	}
	defer ctx.Close()

	keyPEM, err := os.ReadFile(*keyPath)
	if err != nil {
		return err
	}

	sig, err := securecore.ParseSignature(*encoded)
	if err != nil {
		return err
	}

	msg, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	ok, err := ctx.Verify(keyPEM, msg, sig)
	if err != nil {
		return err
	}
	return json.NewEncoder(os.Stdout).Encode(map[string]bool{"valid": ok})
}

func health(args []string) error {
	fs := flag.NewFlagSet("health", flag.ExitOnError)
	fs.Parse(args)

	monitor := healthmon.NewMonitor()
	tctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	snap, err := monitor.Snapshot(tctx)
	if err != nil {
		return err
	}

	return json.NewEncoder(os.Stdout).Encode(struct {
		*healthmon.Snapshot
		Healthy bool `json:"healthy"`
	}{snap, monitor.Healthy(snap)})
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
