// Command miditest checks a pad controller without running the sequencer.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"padseq/midi"
	"padseq/sequencer"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}
	defer gomidi.CloseDriver()

	port := "ATOM"
	if len(os.Args) > 2 {
		port = os.Args[2]
	}

	var err error
	switch os.Args[1] {
	case "list":
		err = listPorts()
	case "input":
		err = printInput(port)
	case "lights":
		err = walkLights(port)
	case "poll":
		pollDevices()
	default:
		usage()
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("Pad controller test")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list            - List all MIDI ports")
	fmt.Println("  input [port]    - Print decoded controller messages")
	fmt.Println("  lights [port]   - Light each pad in turn")
	fmt.Println("  poll            - Poll for device changes")
}

func listPorts() error {
	fmt.Println("(waiting up to 3 seconds...)")
	ins, outs, err := midi.ListPorts()
	if err != nil {
		fmt.Println("Fix: sudo killall coreaudiod midiserver")
		return err
	}
	fmt.Println("=== MIDI Input Ports ===")
	for i, p := range ins {
		fmt.Printf("  %d: %s\n", i, p.String())
	}
	fmt.Println("\n=== MIDI Output Ports ===")
	for i, p := range outs {
		fmt.Printf("  %d: %s\n", i, p.String())
	}
	return nil
}

func printInput(port string) error {
	in, err := midi.FindIn(port)
	if err != nil {
		return err
	}
	ctrl, err := midi.OpenController(in, nil, midi.ControllerConfig{Controls: sequencer.DefaultControlMap()})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	fmt.Printf("Listening on %s. Ctrl+C to exit.\n", in.String())
	err = ctrl.Listen(ctx, func(m sequencer.Message) {
		if pad, ok := sequencer.PadForNote(m.Number); ok && (m.Kind == sequencer.NoteOn || m.Kind == sequencer.NoteOff) {
			fmt.Printf("%-14s pad %d\n", m.Kind, pad)
			return
		}
		fmt.Println(m)
	})
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func walkLights(port string) error {
	out, err := midi.FindOut(port)
	if err != nil {
		return err
	}
	ctrl, err := midi.OpenController(nil, out, midi.ControllerConfig{})
	if err != nil {
		return err
	}

	fmt.Println("Lighting pads 1-16...")
	for pad := 1; pad <= sequencer.Voices; pad++ {
		if err := ctrl.Light(sequencer.LightCommand{Light: sequencer.Pad(pad), On: true}); err != nil {
			return err
		}
		time.Sleep(100 * time.Millisecond)
	}

	fmt.Println("Press Enter to clear...")
	fmt.Scanln()
	return ctrl.ClearLights()
}

func pollDevices() {
	fmt.Println("Polling for device changes every 2 seconds. Ctrl+C to exit.")

	last := ""
	for {
		ins, outs, err := midi.ListPorts()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			time.Sleep(2 * time.Second)
			continue
		}

		var inNames, outNames []string
		for _, p := range ins {
			inNames = append(inNames, p.String())
		}
		for _, p := range outs {
			outNames = append(outNames, p.String())
		}

		current := strings.Join(inNames, ",") + "|" + strings.Join(outNames, ",")
		if current != last {
			fmt.Printf("\n[%s] Device change detected!\n", time.Now().Format("15:04:05"))
			fmt.Printf("  Inputs: %v\n", inNames)
			fmt.Printf("  Outputs: %v\n", outNames)
			last = current
		}

		time.Sleep(2 * time.Second)
	}
}
