// Package securecore is the artifact protection layer for federated
// healthcare data sharing: it gives any byte payload confidentiality
// (AES-256-GCM), integrity (HMAC-SHA-256), and authenticity (RSA-PSS or
// ML-DSA-65 signatures).
//
// A SecurityContext holds one caller's keys and is safe for concurrent
// use; every operation is a pure function of its inputs and the keys fixed
// at construction. Close is the exception: it wipes the keys in place, so
// let in-flight operations finish before closing.
//
// Basic usage:
//
//	ctx, err := securecore.New(key) // key must be exactly 32 bytes
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ctx.Close()
//
//	sealed, err := ctx.Encrypt([]byte("Sensitive healthcare data"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	plaintext, err := ctx.Decrypt(sealed)
//	if err != nil {
//	    log.Fatal(err) // tampering or wrong key: fails closed
//	}
//
// Integrity tags cover payloads that travel in the clear:
//
//	tag, _ := ctx.GenerateTag(data)
//	if !ctx.VerifyTag(data, tag) {
//	    // payload was altered
//	}
//
// Signatures prove origin independently of any shared secret:
//
//	kp, _ := ctx.GenerateKeyPair()
//	sig, _ := ctx.Sign(kp.PrivateKeyPEM, data)
//	ok, _ := ctx.Verify(kp.PublicKeyPEM, data, sig)
//
// The package never persists or transmits key material itself; see the
// keystore subpackage for OS-keyring-backed storage and the config
// subpackage for environment-based key provisioning.
package securecore
