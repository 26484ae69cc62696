package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	catalogx "github.com/shopai/assistant/assistant/catalog"
	contractx "github.com/shopai/assistant/assistant/contract"
	crmx "github.com/shopai/assistant/assistant/crm"
	orchestratorx "github.com/shopai/assistant/assistant/orchestrator"
	ordersx "github.com/shopai/assistant/assistant/orders"
	toolx "github.com/shopai/assistant/assistant/tool"
	configx "github.com/shopai/assistant/pkg/config"
	_ "github.com/shopai/assistant/pkg/logger/autoload"
	openrouterx "github.com/shopai/assistant/pkg/openrouter"
)

type AppConfig struct {
	CRMDSN           string        `envconfig:"CRM_DSN"`
	OrderLookupDelay time.Duration `envconfig:"ORDER_LOOKUP_DELAY" split_words:"true" default:"800ms"`
}

func main() {
	appCfg := configx.MustNew[AppConfig]("")

	openRouterCfg := configx.MustNew[openrouterx.Config]("OPENROUTER")
	if openrouterx.NewClient(*openRouterCfg) == nil {
		panic("failed to initialize openrouter client: api key is missing")
	}

	catalogCfg := configx.MustNew[catalogx.Config]("CATALOG")
	remote, err := catalogx.NewClient(*catalogCfg)
	if err != nil {
		panic(err)
	}
	local, err := catalogx.NewLocalStore()
	if err != nil {
		panic(err)
	}
	orderStore, err := ordersx.NewStore(ordersx.WithLookupDelay(appCfg.OrderLookupDelay))
	if err != nil {
		panic(err)
	}

	ctx := context.Background()

	var recorder contractx.CallbackRecorder = crmx.NewLogRecorder(log.Logger)
	if strings.TrimSpace(appCfg.CRMDSN) != "" {
		pg, err := crmx.NewPostgresRecorder(crmx.Config{DSN: appCfg.CRMDSN})
		if err != nil {
			panic(err)
		}
		if err := pg.Init(ctx); err != nil {
			panic(err)
		}
		defer pg.Close()
		recorder = pg
	}

	registry, err := toolx.NewRegistry(remote, local, orderStore, recorder)
	if err != nil {
		panic(err)
	}

	agent, err := orchestratorx.New(openRouterCfg, registry, orchestratorx.Config{})
	if err != nil {
		panic(err)
	}

	for _, msg := range agent.Messages() {
		fmt.Printf("shopai> %s\n", msg.Text)
	}

	// One turn at a time; the synchronous read loop is the "input disabled
	// while in flight" policy.
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("you> ")
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "/quit" || text == "/exit" {
			break
		}
		if text == "" {
			fmt.Print("you> ")
			continue
		}

		reply, err := agent.HandleMessage(ctx, text)
		if err != nil {
			log.Error().Err(err).Msg("turn failed")
			msgs := agent.Messages()
			reply = msgs[len(msgs)-1].Text
		}
		fmt.Printf("shopai> %s\n", reply)
		fmt.Print("you> ")
	}
}
