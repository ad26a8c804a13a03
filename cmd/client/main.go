package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/adrianliechti/nimbus/pkg/client"

	"github.com/google/uuid"
)

func main() {
	urlFlag := flag.String("url", "http://localhost:8080", "server url")
	tokenFlag := flag.String("token", "", "server token")
	voiceFlag := flag.String("voice", "", "voice id")

	flag.Parse()

	ctx := context.Background()

	voice := *voiceFlag

	options := []client.RequestOption{}

	if *tokenFlag != "" {
		options = append(options, client.WithToken(*tokenFlag))
	}

	client := client.New(*urlFlag, options...)

	if voice == "" {
		val, err := selectVoice(ctx, client)

		if err != nil {
			panic(err)
		}

		voice = val
	}

	chat(ctx, client, voice)
}

func selectVoice(ctx context.Context, client *client.Client) (string, error) {
	reader := bufio.NewReader(os.Stdin)
	output := os.Stdout

	voices, err := client.Voices.List(ctx)

	if err != nil {
		return "", err
	}

	if len(voices) == 0 {
		return "", fmt.Errorf("no voices available")
	}

	sort.SliceStable(voices, func(i, j int) bool {
		return voices[i].Name < voices[j].Name
	})

	for i, v := range voices {
		output.WriteString(fmt.Sprintf("%2d) %s (%s)\n", i+1, v.Name, v.ID))
	}

	output.WriteString(" >  ")
	sel, err := reader.ReadString('\n')

	if err != nil {
		return "", err
	}

	idx, err := strconv.Atoi(strings.TrimSpace(sel))

	if err != nil || idx < 1 || idx > len(voices) {
		return "", fmt.Errorf("invalid voice selection")
	}

	output.WriteString("\n")

	return voices[idx-1].ID, nil
}

func chat(ctx context.Context, c *client.Client, voice string) {
	reader := bufio.NewReader(os.Stdin)
	output := os.Stdout

LOOP:
	for {
		output.WriteString(">>> ")
		input, err := reader.ReadString('\n')

		if err != nil {
			panic(err)
		}

		input = strings.TrimSpace(input)

		if input == "" {
			continue LOOP
		}

		result, err := c.Chat.New(ctx, client.ChatRequest{
			Prompt:  input,
			VoiceID: voice,
		})

		if err != nil {
			output.WriteString(err.Error() + "\n")
			continue LOOP
		}

		output.WriteString(result.Text + "\n")

		if result.Audio != nil {
			name, err := saveAudio(".", result.Audio)

			if err != nil {
				output.WriteString(err.Error() + "\n")
				continue LOOP
			}

			fmt.Println("Saved: " + name)
		}

		output.WriteString("\n")
	}
}

func saveAudio(dir string, audio []byte) (string, error) {
	name := filepath.Join(dir, uuid.New().String()+".mp3")

	if err := os.WriteFile(name, audio, 0600); err != nil {
		return "", err
	}

	return name, nil
}
