package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/hrko/streamdeck"
	sdcontext "github.com/hrko/streamdeck/context"
	"github.com/onyx-and-iris/voicemeeter/v2"

	"github.com/hrko/streamdeck-gridicon/internal/action"
	"github.com/hrko/streamdeck-gridicon/internal/action/iconkey"
	"github.com/hrko/streamdeck-gridicon/internal/action/macro"
	"github.com/hrko/streamdeck-gridicon/internal/config"
	"github.com/hrko/streamdeck-gridicon/pkg/graphics"
	"github.com/hrko/streamdeck-gridicon/pkg/icon"
	"github.com/hrko/streamdeck-gridicon/pkg/safeurl"
	"github.com/hrko/streamdeck-gridicon/pkg/theme"
)

const logName = "gridicon-streamdeck-plugin.*.log"

var (
	chGlobalSettings chan *GlobalSettings
)

type GlobalSettings struct {
	VoiceMeeterKind string `json:"voiceMeeterKind"`
}

func main() {
	log.SetPrefix("package main: ")
	streamdeck.Log().SetOutput(os.Stderr)
	streamdeck.Log().SetPrefix("package streamdeck: ")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	f, err := openLogFile(cfg.LogFile)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	log.SetOutput(f)
	streamdeck.Log().SetOutput(f)

	ctx := context.Background()
	log.Println("Starting gridicon-streamdeck-plugin")
	if err := run(ctx, cfg); err != nil {
		panic(err)
	}
}

// openLogFile opens path for appending, or a new temp file named after
// logName when path is empty.
func openLogFile(path string) (*os.File, error) {
	if path == "" {
		return os.CreateTemp("", logName)
	}
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
}

func run(ctx context.Context, cfg *config.Config) error {
	env, err := newEnv(cfg)
	if err != nil {
		return err
	}

	params, err := streamdeck.ParseRegistrationParams(os.Args)
	if err != nil {
		return err
	}
	log.Printf("Registration params: %v", params)

	client := streamdeck.NewClient(ctx, params)
	log.Println("Client created")

	registerNoActionHandlers(client)
	iconkey.SetupPreClientRun(client)
	macro.SetupPreClientRun(client)

	chErr := make(chan error)
	go func() {
		log.Println("Starting client")
		chErr <- client.Run(ctx)
	}()

	waitClientConnected(client)

	if err := iconkey.SetupPostClientRun(client, env); err != nil {
		return err
	}
	if err := macro.SetupPostClientRun(client, env); err != nil {
		return err
	}
	if cfg.ThemeCSS != "" && cfg.WatchTheme {
		go watchTheme(ctx, cfg.ThemeCSS, env.Colors)
	}

	globalSettings, err := fetchGlobalSettings(ctx, client)
	if err != nil {
		log.Printf("error fetching global settings: %v\n", err)
		globalSettings = &GlobalSettings{}
	}
	log.Printf("Global settings: %v\n", globalSettings)

	vm, err := loginVoicemeeter(globalSettings.VoiceMeeterKind)
	if err != nil {
		// icon and macro keys keep drawing without voicemeeter
		log.Printf("error logging in to voicemeeter: %v\n", err)
		return <-chErr
	}
	defer vm.Logout()
	vm.EventAdd("mdirty")

	macro.AttachMixer(client, vm)

	return <-chErr
}

// newEnv builds the icon collaborators shared by all actions.
func newEnv(cfg *config.Config) (*action.Env, error) {
	sheet := theme.Default()
	if cfg.ThemeCSS != "" {
		s, err := theme.Load(cfg.ThemeCSS)
		if err != nil {
			return nil, err
		}
		sheet = s
	}
	for token, err := range sheet.ColorSet(nil).Validate() {
		log.Printf("theme color %v: %v\n", token, err)
	}

	markup := icon.Embedded()
	if cfg.IconDir != "" {
		markup = icon.Dir(cfg.IconDir, markup)
	}

	keyStyle := graphics.DefaultKeyStyle()
	keyStyle.IconSize = keyStyle.IconSize * cfg.KeySize / keyStyle.Size
	keyStyle.Size = cfg.KeySize

	return &action.Env{
		Colors:    theme.NewLive(sheet),
		Markup:    markup,
		Sanitizer: safeurl.NewPolicy(),
		KeyStyle:  keyStyle,
	}, nil
}

func watchTheme(ctx context.Context, path string, live *theme.Live) {
	err := theme.Watch(ctx, path, func(s *theme.Sheet) {
		log.Printf("theme reloaded: %v\n", path)
		live.Store(s)
		iconkey.Refresh()
		macro.Refresh()
	}, func(err error) {
		log.Printf("error reloading theme: %v\n", err)
	})
	if err != nil {
		log.Printf("error watching theme: %v\n", err)
	}
}

func registerNoActionHandlers(client *streamdeck.Client) {
	chGlobalSettings = make(chan *GlobalSettings)
	client.RegisterNoActionHandler(streamdeck.DidReceiveGlobalSettings, func(ctx context.Context, client *streamdeck.Client, event streamdeck.Event) error {
		payload := new(struct {
			Settings *GlobalSettings `json:"settings"`
		})
		err := json.Unmarshal(event.Payload, payload)
		if err != nil {
			log.Printf("error unmarshaling payload: %v\n", err)
			return err
		}
		select {
		case chGlobalSettings <- payload.Settings:
			log.Println("global settings received and sent to channel")
		default:
			log.Println("global settings received but no one is waiting for channel")
		}
		return nil
	})
}

func fetchGlobalSettings(ctx context.Context, client *streamdeck.Client) (*GlobalSettings, error) {
	if !client.IsConnected() {
		return nil, fmt.Errorf("client is not connected")
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	gsCh := make(chan *GlobalSettings, 1)
	go func() {
		select {
		case gs := <-chGlobalSettings:
			gsCh <- gs
		case <-ctx.Done():
		}
	}()
	ctx = sdcontext.WithContext(ctx, client.UUID())
	if err := client.GetGlobalSettings(ctx); err != nil {
		return nil, err
	}
	select {
	case gs := <-gsCh:
		if gs == nil {
			gs = &GlobalSettings{}
		}
		return gs, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func loginVoicemeeter(kindId string) (*voicemeeter.Remote, error) {
	switch kindId {
	case "basic", "banana", "potato":
	default:
		log.Printf("unknown kindId: '%v', fallback to 'basic'\n", kindId)
		kindId = "basic"
	}
	vm, err := voicemeeter.NewRemote(kindId, 0)
	if err != nil {
		return nil, err
	}
	log.Println("Login to voicemeeter")
	err = vm.Login()
	if err != nil {
		return nil, err
	}
	return vm, nil
}

func waitClientConnected(client *streamdeck.Client) {
	if !client.IsConnected() {
		log.Println("Waiting for client to connect")
		for !client.IsConnected() {
			time.Sleep(time.Second / 10)
		}
	}
}
