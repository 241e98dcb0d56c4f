// This defines a command-line utility for viewing or manipulating standard
// MIDI files (SMF, usually with a ".mid" extension).
package main

import (
	"flag"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/jdufresne/go-smf-midi"
)

var hexCharsRegexp = regexp.MustCompile(`\s`)
var validHexStringRegexp = regexp.MustCompile(`^([a-fA-F0-9]{2})*$`)

// Converts the string s to bytes. The string may only contain hex chars and
// whitespace.
func hexStringToBytes(s string) ([]byte, error) {
	s = hexCharsRegexp.ReplaceAllString(s, "")
	if !validHexStringRegexp.MatchString(s) {
		return nil, fmt.Errorf("invalid hex bytes string")
	}
	out := make([]byte, len(s)/2)
	for i := range out {
		v, e := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if e != nil {
			return nil, fmt.Errorf("invalid hex byte %q: %w", s[i*2:i*2+2], e)
		}
		out[i] = byte(v)
	}
	return out, nil
}

// Takes a track number (with 1 being the first track), and returns a
// pointer to the track's data in the given file.
func getNumberedTrack(track int, tracks []*midi.Track) (*midi.Track, error) {
	if track <= 0 {
		return nil, fmt.Errorf("invalid track number: %d (track numbering starts at 1)", track)
	}
	if (track - 1) >= len(tracks) {
		return nil, fmt.Errorf("invalid track number: %d (file only has %d tracks)", track, len(tracks))
	}
	return tracks[track-1], nil
}

// Modifies t to insert a new event, encoded as a hex string, after the
// event at the given position.
func insertNewEvent(hexData string, t *midi.Track, position int) error {
	if position < 0 || position >= len(t.Events) {
		return fmt.Errorf("invalid track position: %d", position)
	}
	data, e := hexStringToBytes(hexData)
	if e != nil {
		return fmt.Errorf("invalid new event data: %w", e)
	}
	n, ev, perr := midi.ParseEvent(data, 0)
	if perr != nil {
		return fmt.Errorf("couldn't parse new event: %w", perr)
	}
	if n != len(data) {
		return fmt.Errorf("new event data contains %d trailing bytes", len(data)-n)
	}
	fmt.Printf("Inserting new event: %s\n", ev.Explain())
	newEvents := make([]midi.Event, 0, len(t.Events)+1)
	newEvents = append(newEvents, t.Events[:position]...)
	newEvents = append(newEvents, ev)
	newEvents = append(newEvents, t.Events[position:]...)
	t.Events = newEvents
	return nil
}

// Converts the given string to a number, and verifies that the number is
// between 0 and 15 (inclusive).
func stringToChannelNumber(s string) (byte, error) {
	v, e := strconv.Atoi(s)
	if e != nil {
		return 0, fmt.Errorf("couldn't convert %s to number: %w", s, e)
	}
	if v < 0 || v > 15 {
		return 0, fmt.Errorf("invalid channel number: %d", v)
	}
	return byte(v), nil
}

// Modifies every channel event in tracks to reassign channel numbers from
// originalChannel to newChannel. Used to fix files that misassign
// instruments to the wrong channel.
func reassignChannels(args string, tracks []*midi.Track) error {
	parts := strings.Split(args, ",")
	if len(parts) != 2 {
		return fmt.Errorf("%q doesn't contain two channel numbers", args)
	}
	originalChannel, e := stringToChannelNumber(parts[0])
	if e != nil {
		return fmt.Errorf("bad original channel number: %w", e)
	}
	newChannel, e := stringToChannelNumber(parts[1])
	if e != nil {
		return fmt.Errorf("bad new channel number: %w", e)
	}
	totalCount, modifiedCount := 0, 0
	for _, t := range tracks {
		for i := range t.Events {
			ev := &t.Events[i]
			if ev.Class() != midi.StatusChannel {
				continue
			}
			totalCount++
			status := ev.StatusByte()
			if (status & 0x0f) != originalChannel {
				continue
			}
			newStatus := (status & 0xf0) | newChannel
			eb := ev.EventBytes()
			eb[0] = newStatus
			modifiedCount++
		}
	}
	fmt.Printf("Reassigned %d/%d channel events from channel %d to %d.\n",
		modifiedCount, totalCount, originalChannel, newChannel)
	return nil
}

// Scales the velocity of every note-on event in t.
func rescaleVelocity(scale float64, t *midi.Track) error {
	if scale < 0 || scale > 1 {
		return fmt.Errorf("velocity scale must be between 0 and 1, got %f", scale)
	}
	modifiedCount := 0
	for i := range t.Events {
		ev := &t.Events[i]
		if ev.Class() != midi.StatusChannel || (ev.StatusByte()&0xf0) != 0x90 {
			continue
		}
		payload := ev.Payload()
		if len(payload) < 2 || payload[1] == 0 {
			continue
		}
		newVelocity := uint8(float64(payload[1]) * scale)
		if newVelocity > 127 {
			newVelocity = 127
		}
		payload[1] = newVelocity
		modifiedCount++
	}
	fmt.Printf("Updated the velocity of %d note-on events.\n", modifiedCount)
	return nil
}

// Sets the delta time of the event at the given position in t.
func adjustTimeDelta(newTimeDelta int, t *midi.Track, position int) error {
	if newTimeDelta > midi.MaxVLQValue {
		return fmt.Errorf("time delta of %d exceeds the limit of %d", newTimeDelta, midi.MaxVLQValue)
	}
	index := position - 1
	if index < 0 || index >= len(t.Events) {
		return fmt.Errorf("invalid track event number for delta-time adjustment: %d", position)
	}
	t.Events[index].SetDeltaTime(midi.DeltaTime(newTimeDelta))
	return nil
}

func deleteEventAt(t *midi.Track, position int) error {
	index := position - 1
	if index < 0 || index >= len(t.Events) {
		return fmt.Errorf("invalid event number to delete: %d", position)
	}
	t.Events = append(t.Events[:index], t.Events[index+1:]...)
	return nil
}

// Computes the longest-running track, in ticks, across the whole file.
func getLongestTrackTicks(tracks []*midi.Track) uint32 {
	var longest uint32
	for _, t := range tracks {
		var current uint32
		for i := range t.Events {
			current += uint32(t.Events[i].DeltaTime())
		}
		if current > longest {
			longest = current
		}
	}
	return longest
}

// Adds an additional percussion track to the file, timed to match the
// tempo implied by its longest track.
func addExtraBeats(file *midi.SMFFile) error {
	hdr := file.Header()
	if hdr == nil {
		return fmt.Errorf("file has no MThd chunk")
	}
	ticksToGenerate := getLongestTrackTicks(file.Tracks())
	ticksPerBeat := uint32(hdr.Division.TicksPerQuarterNote()) / 2
	if ticksPerBeat == 0 {
		return fmt.Errorf("file doesn't specify ticks per beat")
	}
	beatsToGenerate := ticksToGenerate / ticksPerBeat

	type drumHit struct {
		note     byte
		velocity byte
	}
	pattern := []drumHit{
		{36, 120}, // bass drum
		{42, 80},  // closed hi-hat
		{40, 100}, // electric snare
		{42, 80},  // closed hi-hat
	}

	var track midi.Track
	for i := uint32(0); i < beatsToGenerate; i++ {
		hit := pattern[i%uint32(len(pattern))]
		track.Events = append(track.Events,
			midi.NewChannelEvent(0, 0x90|9, hit.note, hit.velocity),
			midi.NewChannelEvent(midi.DeltaTime(ticksPerBeat), 0x90|9, hit.note, 0),
		)
	}
	track.Events = append(track.Events, midi.NewEndOfTrackEvent(0))

	file.Chunks = append(file.Chunks, midi.Chunk{
		Header: midi.ChunkHeader{ID: midi.ChunkMTrk},
		Track:  &track,
	})
	hdr.NumTracks++
	if hdr.NumTracks > 1 {
		hdr.Format = 1
	}
	fmt.Printf("Appended track %d, with %d events.\n", len(file.Tracks()), len(track.Events))
	return nil
}

func run() int {
	var filename, outputFilename string
	var dumpEvents bool
	var track, position int
	var reassignChannel string
	var newEventHex string
	var deleteEvent bool
	var newTimeDelta int
	var scaleVelocity float64
	var bootsAndCats bool
	flag.StringVar(&filename, "input_file", "", "The .mid file to open.")
	flag.StringVar(&outputFilename, "output_file", "", "The name of the .mid file to create.")
	flag.BoolVar(&dumpEvents, "dump_events", false, "If set, print a list of all events in the file to stdout.")
	flag.IntVar(&track, "track", -1, "The track to modify.")
	flag.IntVar(&position, "position", -1, "The position in the track to modify. 0 = insert at the first position.")
	flag.IntVar(&newTimeDelta, "new_time_delta", -1, "Set the time delta of the event specified by -position and -track to this value. Applied before -new_event.")
	flag.StringVar(&newEventHex, "new_event", "", "A hex string containing a delta time followed by a MIDI event to insert at the given position. Must not use running status.")
	flag.StringVar(&reassignChannel, "reassign_channel", "", "A comma-separated pair of channel numbers (0-15). Events in the first channel are reassigned to the second.")
	flag.Float64Var(&scaleVelocity, "scale_velocity", -1, "A value between 0.0 and 1.0. Scales the velocity of every note-on event in the selected track.")
	flag.BoolVar(&bootsAndCats, "boots_and_cats", false, "If set, adds an extra percussion track to the file.")
	flag.BoolVar(&deleteEvent, "delete_event", false, "If set, delete the event at the specified track and position.")
	flag.Parse()

	if filename == "" {
		fmt.Println("Invalid arguments. Run with -help for more information.")
		return 1
	}
	file, e := midi.ReadSMFFile(filename)
	if e != nil {
		fmt.Printf("Couldn't parse %s: %s\n", filename, e)
		return 1
	}
	tracks := file.Tracks()
	fmt.Printf("Parsed %s OK. Contains %d tracks.\n", filename, len(tracks))

	if deleteEvent {
		t, e := getNumberedTrack(track, tracks)
		if e == nil {
			e = deleteEventAt(t, position)
		}
		if e != nil {
			fmt.Printf("Failed deleting event: %s\n", e)
			return 1
		}
	}

	if newTimeDelta >= 0 {
		t, e := getNumberedTrack(track, tracks)
		if e == nil {
			e = adjustTimeDelta(newTimeDelta, t, position)
		}
		if e != nil {
			fmt.Printf("Failed adjusting time delta: %s\n", e)
			return 1
		}
	}

	if newEventHex != "" {
		t, e := getNumberedTrack(track, tracks)
		if e == nil {
			e = insertNewEvent(newEventHex, t, position)
		}
		if e != nil {
			fmt.Printf("Failed inserting new event: %s\n", e)
			return 1
		}
	}

	if reassignChannel != "" {
		if e := reassignChannels(reassignChannel, tracks); e != nil {
			fmt.Printf("Failed reassigning channel numbers: %s\n", e)
			return 1
		}
	}

	if scaleVelocity >= 0 && scaleVelocity <= 1.0 {
		t, e := getNumberedTrack(track, tracks)
		if e == nil {
			e = rescaleVelocity(scaleVelocity, t)
		}
		if e != nil {
			fmt.Printf("Failed scaling track velocity: %s\n", e)
			return 1
		}
	}

	if bootsAndCats {
		if e := addExtraBeats(&file); e != nil {
			fmt.Printf("Failed adding extra track: %s\n", e)
			return 1
		}
	}

	if dumpEvents {
		for i, t := range file.Tracks() {
			fmt.Printf("Track %d (%d events):\n", i+1, len(t.Events))
			for j := range t.Events {
				fmt.Printf("  %d. %s\n", j+1, t.Events[j].Explain())
			}
		}
	}

	if outputFilename != "" {
		if e := file.WriteFile(outputFilename); e != nil {
			fmt.Printf("Error writing SMF file: %s\n", e)
			return 1
		}
		fmt.Printf("%s saved OK.\n", outputFilename)
	}
	return 0
}

func main() {
	os.Exit(run())
}
