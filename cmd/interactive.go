package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var interactiveSeed int64

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Prompt for simulation parameters, run, and offer another simulation",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel(logLevel)
		if err := interactiveLoop(os.Stdin, os.Stdout, interactiveSeed); err != nil {
			logrus.Fatalf("Interactive session failed: %v", err)
		}
	},
}

// interactiveLoop runs simulations until the user declines another one or input ends.
// Each simulation uses the next seed so repeated answers still explore new draws.
func interactiveLoop(in io.Reader, out io.Writer, baseSeed int64) error {
	p := NewPrompter(in, out)
	for i := int64(0); ; i++ {
		fmt.Fprintln(out, "Starting simulator...")
		cfg, err := p.ReadRunConfig()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		cfg.Seed = baseSeed + i
		if _, err := executeRuns(cfg, out, RunOptions{}); err != nil {
			return err
		}
		again, err := p.AskIfContinue()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if !again {
			return nil
		}
	}
}

// Prompter asks for values on out and reads answers line by line from in,
// re-prompting until an answer parses.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewPrompter creates a Prompter.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

// readLine returns the next trimmed input line, or io.EOF when input ends.
func (p *Prompter) readLine() (string, error) {
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// PromptInt prints msg and reads an integer, retrying on parse errors.
func (p *Prompter) PromptInt(msg string) (int, error) {
	for {
		fmt.Fprint(p.out, msg)
		line, err := p.readLine()
		if err != nil {
			return 0, err
		}
		v, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(p.out, "Must enter an integer.")
			continue
		}
		fmt.Fprintln(p.out)
		return v, nil
	}
}

// PromptFloat prints msg and reads a number, retrying on parse errors.
func (p *Prompter) PromptFloat(msg string) (float64, error) {
	for {
		fmt.Fprint(p.out, msg)
		line, err := p.readLine()
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			fmt.Fprintln(p.out, "Must enter a number.")
			continue
		}
		fmt.Fprintln(p.out)
		return v, nil
	}
}

// promptPositive re-prompts until the answer is greater than zero.
func (p *Prompter) promptPositive(msg, complaint string) (int, error) {
	for {
		v, err := p.PromptInt(msg)
		if err != nil {
			return 0, err
		}
		if v > 0 {
			return v, nil
		}
		fmt.Fprintln(p.out, complaint)
	}
}

// ReadRunConfig prompts for every simulation parameter and validates each answer.
// Run options not asked for keep their defaults.
func (p *Prompter) ReadRunConfig() (RunConfig, error) {
	cfg := DefaultRunConfig()
	var err error

	if cfg.Routers, err = p.promptPositive("Enter the number of Intermediate routers: ", "Number must be greater than 0"); err != nil {
		return cfg, err
	}

	for {
		if cfg.ArrivalProbability, err = p.PromptFloat("Enter the arrival probability of a packet: "); err != nil {
			return cfg, err
		}
		if cfg.ArrivalProbability >= 0 && cfg.ArrivalProbability <= 1 {
			break
		}
		fmt.Fprintln(p.out, "Number must be between 0 and 1")
	}

	if cfg.MaxBufferSize, err = p.promptPositive("Enter the maximum buffer size of a router: ", "Number must be greater than 0"); err != nil {
		return cfg, err
	}

	// A bad size restarts from the minimum
	for {
		if cfg.MinPacketSize, err = p.PromptInt("Enter the minimum size of a packet: "); err != nil {
			return cfg, err
		}
		if cfg.MinPacketSize <= 0 {
			fmt.Fprintln(p.out, "Size must be greater than 0!")
			continue
		}
		if cfg.MaxPacketSize, err = p.PromptInt("Enter the maximum size of a packet: "); err != nil {
			return cfg, err
		}
		if cfg.MaxPacketSize <= 0 {
			fmt.Fprintln(p.out, "Size must be greater than 0!")
			continue
		}
		if cfg.MinPacketSize <= cfg.MaxPacketSize {
			break
		}
		fmt.Fprintln(p.out, "Minimum size cannot be greater than maximum!")
	}

	if cfg.Bandwidth, err = p.promptPositive("Enter the bandwidth size: ", "Size must be greater than 0!"); err != nil {
		return cfg, err
	}

	d, err := p.promptPositive("Enter the simulation duration: ", "Duration must be greater than 0!")
	if err != nil {
		return cfg, err
	}
	cfg.Duration = int64(d)

	return cfg, nil
}

// AskIfContinue asks whether to run another simulation; only y or n are accepted.
func (p *Prompter) AskIfContinue() (bool, error) {
	for {
		fmt.Fprint(p.out, "Do you want to try another simulation? ")
		line, err := p.readLine()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "y":
			fmt.Fprintln(p.out)
			return true, nil
		case "n":
			return false, nil
		}
		fmt.Fprintln(p.out, "Invalid input. Please enter 'y' or 'n'.")
	}
}

func init() {
	interactiveCmd.Flags().Int64Var(&interactiveSeed, "seed", 42, "Seed for the first simulation (incremented per simulation)")
	interactiveCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	rootCmd.AddCommand(interactiveCmd)
}
