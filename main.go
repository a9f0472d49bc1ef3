package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"osmium/http3"
)

const VERSION = "1.0.0"

// decodeStream feeds a capture through the decoder in configured-size chunks
// and logs every frame. The chunk size never changes what is reported.
func decodeStream(path string, conf Config) error {
	var in io.Reader
	if path == "-" {
		in = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	encoding := conf.Input.Encoding
	if encoding == "auto" {
		if path == "-" {
			encoding = "none"
		} else {
			encoding = EncodingForPath(path)
		}
	}
	reader, err := DecompressInput(bufio.NewReader(in), encoding)
	if err != nil {
		return err
	}

	visitor := newDumpVisitor(logger, conf.Logging.HexPayloads)
	decoder, err := http3.NewDecoder(visitor, conf.Decoder.DecoderOptions())
	if err != nil {
		return err
	}

	consumed := 0
	buf := make([]byte, conf.Input.ChunkSize)
	for {
		n, readErr := reader.Read(buf)
		if n > 0 {
			consumed += decoder.Feed(buf[:n])
			if decoder.Err() != nil {
				return fmt.Errorf("offset %d: %w", consumed, decoder.Err())
			}
			if visitor.delegated {
				logger.Info().
					Uint64("session_id", visitor.delegatedSession).
					Int("bytes", consumed).
					Msg("remaining stream belongs to the WebTransport session")
				return nil
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return readErr
		}
	}
	visitor.summary(consumed)
	return nil
}

// dumpSettings statically parses a file holding a single SETTINGS frame,
// the way a stored peer-settings blob is revived on a connection resume.
func dumpSettings(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	frame, err := http3.DecodeSettings(data)
	if err != nil {
		return err
	}
	for id, value := range frame.Values {
		fmt.Printf("%s = %d\n", http3.SettingName(id), value)
	}
	return nil
}

func main() {
	if len(os.Args) > 1 {
		if os.Args[1] == "--version" || os.Args[1] == "-v" {
			fmt.Printf("Osmium version %s\n", VERSION)
			return
		} else if os.Args[1] == "--help" || os.Args[1] == "-h" {
			fmt.Println("Usage: osmium [options] <capture-file>")
			fmt.Println("")
			fmt.Println("Decodes a captured HTTP/3 frame stream and logs every frame.")
			fmt.Println("Use '-' as the file to read from standard input.")
			fmt.Println("")
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Show version information")
			fmt.Println("  --help, -h       Show this help message")
			fmt.Println("  validate         Validate the configuration file")
			fmt.Println("  settings <file>  Parse a stored SETTINGS frame and print its values")
			return
		} else if os.Args[1] == "validate" {
			println("Validating configuration...")
			configPath := GetConfigPath()
			if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
				println("Configuration file does not exist. Did you run Osmium at least once?")
				return
			}
			conf, err := GetConfig()
			if err != nil {
				println("Configuration is invalid:", err.Error())
				os.Exit(1)
			}
			if err := conf.Validate(); err != nil {
				println("Configuration is invalid:", err.Error())
				os.Exit(1)
			}
			println("Configuration is valid")
			return
		} else if os.Args[1] == "settings" {
			if len(os.Args) < 3 {
				println("Please specify a file. Example: osmium settings peer-settings.bin")
				return
			}
			if err := dumpSettings(os.Args[2]); err != nil {
				ErrorLog(err)
				os.Exit(1)
			}
			return
		}

		conf, err := GetConfig()
		if err != nil {
			println("Error loading config:", err.Error())
			os.Exit(1)
		}
		if err := conf.Validate(); err != nil {
			println("Invalid config:", err.Error())
			os.Exit(1)
		}
		if err := SetupLogger(conf.Logging); err != nil {
			println("Error setting up logging:", err.Error())
			os.Exit(1)
		}

		if err := decodeStream(os.Args[1], conf); err != nil {
			ErrorLog(err)
			os.Exit(1)
		}
		return
	}

	fmt.Println("Usage: osmium [options] <capture-file>")
	fmt.Println("Run 'osmium --help' for details.")
}
