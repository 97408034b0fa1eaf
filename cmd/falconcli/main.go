package main

import (
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/tuneinsight/lattigo/v4/utils"

	falcon "falcon-signature/falcon"
	"falcon-signature/falcon/keys"
	measure "falcon-signature/measure"
	prof "falcon-signature/prof"
)

func usage() {
	fmt.Println(`usage: falconcli <gen|sign|verify> [options]

Subcommands:
  gen      Generate a key pair and write ./falcon_keys/{public,secret}.json
           Flags:
             -n      <512|1024>   ring degree (default: 512)
             -seed   <hex>        32-byte seed for deterministic keygen
             -trials <int>        max keygen trials (default: 64)
             -pub    <path>       public key output path
             -sec    <path>       secret key output path
             -raw                 write canonical bytes instead of JSON documents

  sign     Sign a message and write ./falcon_keys/signature.json
           Flags:
             -m      <string>     message to sign
             -mfile  <path>       read message bytes from a file instead of -m
             -sec    <path>       secret key input path
             -out    <path>       signature output path
             -max    <int>        max rejection trials (0 = library default)
             -seed   <hex>        32-byte seed for deterministic signing
             -raw                 read/write canonical bytes instead of JSON
             -time                print a timing report to stderr

  verify   Verify a signature against a message and public key
           Flags:
             -m / -mfile          message, as for sign
             -pub    <path>       public key input path
             -sig    <path>       signature input path
             -raw                 read canonical bytes instead of JSON`)
	os.Exit(1)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}
	switch os.Args[1] {
	case "gen":
		runGen(os.Args[2:])
	case "sign":
		runSign(os.Args[2:])
	case "verify":
		runVerify(os.Args[2:])
	default:
		usage()
	}
}

// prngFor returns the system generator, or a seeded one when seedHex is
// set.
func prngFor(seedHex string) (utils.PRNG, error) {
	if seedHex == "" {
		return falcon.NewSystemPRNG()
	}
	seed, err := hex.DecodeString(seedHex)
	if err != nil {
		return nil, fmt.Errorf("bad -seed: %w", err)
	}
	return falcon.NewSeededPRNG(seed)
}

// loadMessage resolves the -m / -mfile pair.
func loadMessage(msg, msgFile string) ([]byte, error) {
	if msgFile != "" {
		return os.ReadFile(msgFile)
	}
	if msg == "" {
		return nil, errors.New("missing message: pass -m or -mfile")
	}
	return []byte(msg), nil
}

func runGen(args []string) {
	fs := flag.NewFlagSet("gen", flag.ExitOnError)
	degree := fs.Int("n", 512, "ring degree, 512 or 1024")
	seedHex := fs.String("seed", "", "hex seed for deterministic keygen (32 bytes)")
	trials := fs.Int("trials", 64, "max keygen trials")
	pubPath := fs.String("pub", "falcon_keys/public.json", "public key output path")
	secPath := fs.String("sec", "falcon_keys/secret.json", "secret key output path")
	raw := fs.Bool("raw", false, "write canonical bytes instead of JSON documents")
	fs.Parse(args)

	var par falcon.Params
	switch *degree {
	case 512:
		par = falcon.Falcon512()
	case 1024:
		par = falcon.Falcon1024()
	default:
		log.Fatalf("gen: unsupported degree %d", *degree)
	}
	prng, err := prngFor(*seedHex)
	if err != nil {
		log.Fatalf("gen: %v", err)
	}
	start := time.Now()
	pk, sk, err := falcon.Keygen(par, prng, falcon.KeygenOpts{MaxTrials: *trials})
	if err != nil {
		log.Fatalf("gen: %v", err)
	}
	prof.Track(start, "keygen")
	pkBytes := pk.Encode()
	skBytes := sk.Encode()
	measure.Global.Add("falcon/public_key", int64(len(pkBytes)))
	measure.Global.Add("falcon/secret_key", int64(len(skBytes)))
	if *raw {
		if err := keys.SaveRaw(*pubPath, pkBytes); err != nil {
			log.Fatalf("gen: write public: %v", err)
		}
		if err := keys.SaveRaw(*secPath, skBytes); err != nil {
			log.Fatalf("gen: write secret: %v", err)
		}
	} else {
		if err := keys.SavePublic(*pubPath, keys.NewPublic(par.N, pkBytes)); err != nil {
			log.Fatalf("gen: write public: %v", err)
		}
		if err := keys.SaveSecret(*secPath, keys.NewSecret(par.N, skBytes)); err != nil {
			log.Fatalf("gen: write secret: %v", err)
		}
	}
	fmt.Printf("gen: n=%d public=%s secret=%s\n", par.N, *pubPath, *secPath)
	if measure.Enabled {
		measure.Global.Dump()
	}
}

func runSign(args []string) {
	fs := flag.NewFlagSet("sign", flag.ExitOnError)
	msg := fs.String("m", "", "message string")
	msgFile := fs.String("mfile", "", "file with message bytes")
	secPath := fs.String("sec", "falcon_keys/secret.json", "secret key input path")
	outPath := fs.String("out", "falcon_keys/signature.json", "signature output path")
	max := fs.Int("max", 0, "max rejection trials (0 = library default)")
	seedHex := fs.String("seed", "", "hex seed for deterministic signing (32 bytes)")
	raw := fs.Bool("raw", false, "read/write canonical bytes instead of JSON")
	timing := fs.Bool("time", false, "print timing report to stderr")
	fs.Parse(args)

	message, err := loadMessage(*msg, *msgFile)
	if err != nil {
		log.Fatalf("sign: %v", err)
	}
	skBytes, err := loadEncoded(*secPath, *raw, loadSecretBytes)
	if err != nil {
		log.Fatalf("sign: read secret: %v", err)
	}
	sk, err := falcon.DecodeSecretKey(skBytes)
	if err != nil {
		log.Fatalf("sign: %v", err)
	}
	prng, err := prngFor(*seedHex)
	if err != nil {
		log.Fatalf("sign: %v", err)
	}
	signer := falcon.NewSigner(sk)
	signer.MaxTrials = *max
	start := time.Now()
	sig, err := signer.Sign(message, prng)
	if err != nil {
		log.Fatalf("sign: %v", err)
	}
	prof.Track(start, "sign")
	sigBytes, err := sig.Encode()
	if err != nil {
		log.Fatalf("sign: %v", err)
	}
	measure.Global.Add("falcon/signature", int64(len(sigBytes)))
	if *raw {
		err = keys.SaveRaw(*outPath, sigBytes)
	} else {
		doc := keys.NewSignature(sk.Params().N, sigBytes)
		doc.Attempts = signer.Attempts()
		err = keys.SaveSignature(*outPath, doc)
	}
	if err != nil {
		log.Fatalf("sign: write signature: %v", err)
	}
	fmt.Printf("sign: n=%d bytes=%d attempts=%d signature=%s\n",
		sk.Params().N, len(sigBytes), signer.Attempts(), *outPath)
	if *timing {
		prof.Report(os.Stderr, prof.SnapshotAndReset())
	}
	if measure.Enabled {
		measure.Global.Dump()
	}
}

func runVerify(args []string) {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	msg := fs.String("m", "", "message string")
	msgFile := fs.String("mfile", "", "file with message bytes")
	pubPath := fs.String("pub", "falcon_keys/public.json", "public key input path")
	sigPath := fs.String("sig", "falcon_keys/signature.json", "signature input path")
	raw := fs.Bool("raw", false, "read canonical bytes instead of JSON")
	fs.Parse(args)

	message, err := loadMessage(*msg, *msgFile)
	if err != nil {
		log.Fatalf("verify: %v", err)
	}
	pkBytes, err := loadEncoded(*pubPath, *raw, loadPublicBytes)
	if err != nil {
		log.Fatalf("verify: read public: %v", err)
	}
	sigBytes, err := loadEncoded(*sigPath, *raw, loadSignatureBytes)
	if err != nil {
		log.Fatalf("verify: read signature: %v", err)
	}
	if !falcon.VerifyMessage(message, sigBytes, pkBytes) {
		log.Fatal("verify: signature invalid")
	}
	fmt.Println("signature verified")
}

// loadEncoded reads either the canonical bytes (raw) or a JSON document
// unwrapped by fromJSON.
func loadEncoded(path string, raw bool, fromJSON func(string) ([]byte, error)) ([]byte, error) {
	if raw {
		return keys.LoadRaw(path)
	}
	return fromJSON(path)
}

func loadPublicBytes(path string) ([]byte, error) {
	doc, err := keys.LoadPublic(path)
	if err != nil {
		return nil, err
	}
	return doc.Bytes()
}

func loadSecretBytes(path string) ([]byte, error) {
	doc, err := keys.LoadSecret(path)
	if err != nil {
		return nil, err
	}
	return doc.Bytes()
}

func loadSignatureBytes(path string) ([]byte, error) {
	doc, err := keys.LoadSignature(path)
	if err != nil {
		return nil, err
	}
	return doc.Bytes()
}
