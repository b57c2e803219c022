package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/cloudflare/circl/sign/ed25519"

	"github.com/ledgerstream/streams-go/internal/constants"
	"github.com/ledgerstream/streams-go/pkg/channel"
	"github.com/ledgerstream/streams-go/pkg/metrics"
	"github.com/ledgerstream/streams-go/pkg/prng"
	"github.com/ledgerstream/streams-go/pkg/transport"
)

// demoCommand publishes a few packets per publisher through an in-memory
// ledger, advancing cursors as it goes, and prints the resulting
// next-message-id table. Everything is derived deterministically from the
// seed, so two runs with the same seed produce the same channel.
func demoCommand() {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)
	seed := fs.String("seed", "streamsctl demo seed", "seed phrase the channel is derived from")
	publishers := fs.Int("publishers", 2, "number of publishers")
	messages := fs.Int("messages", 3, "messages per publisher")
	logLevel := fs.String("log-level", "info", "log level (debug, info, warn, error)")
	logFormat := fs.String("log-format", "text", "log format (text, json)")
	_ = fs.Parse(os.Args[2:])

	format := metrics.FormatText
	if *logFormat == "json" {
		format = metrics.FormatJSON
	}
	log := metrics.NewLogger(
		metrics.WithLevel(metrics.ParseLevel(*logLevel)),
		metrics.WithFormat(format),
		metrics.WithName("demo"),
	)

	// Channel master key, domain-separated from the seed.
	master := prng.FromSeed(constants.DomainSeparatorChannelKey, *seed)

	appinstBytes := master.GenBytes([]byte("appinst"), constants.AppInstSize)
	appinst, err := channel.AppInstFromBytes(appinstBytes)
	if err != nil {
		log.Error("appinst derivation failed", metrics.Fields{"error": err.Error()})
		os.Exit(1)
	}
	log.Info("channel derived", metrics.Fields{"appinst": appinst.String()})

	// Publisher identities come from the counter-mode source, so they are
	// reproducible from the seed as well.
	rng := prng.NewRng(master, []byte("publisher-keys"))
	type publisher struct {
		id   channel.PublisherID
		priv ed25519.PrivateKey
	}
	pubs := make([]publisher, 0, *publishers)
	state := channel.NewState(appinst, false)
	for i := 0; i < *publishers; i++ {
		pk, sk, err := ed25519.GenerateKey(rng)
		if err != nil {
			log.Error("key generation failed", metrics.Fields{"error": err.Error()})
			os.Exit(1)
		}
		id := channel.PublisherIDFromKey(pk)
		pubs = append(pubs, publisher{id: id, priv: sk})
		state.Register(id, channel.Cursor{SeqNo: 0})
		log.Info("publisher registered", metrics.Fields{"publisher": id.String()})
	}

	tracer := metrics.NewRecordingTracer()
	ledger := transport.NewTraced(transport.NewBucket(), tracer)

	for round := 1; round <= *messages; round++ {
		for i, p := range pubs {
			cur, err := state.AdvanceNext(p.id)
			if err != nil {
				log.Error("cursor advance failed", metrics.Fields{"error": err.Error()})
				os.Exit(1)
			}

			public := []byte(fmt.Sprintf("public payload %d from publisher %d", round, i))
			masked := []byte(fmt.Sprintf("masked payload %d from publisher %d", round, i))

			// Odd rounds publish signed packets, even rounds tagged ones.
			var content channel.MessageContent
			if round%2 == 1 {
				content = channel.SignPacket(p.priv, cur.Link, public, masked)
			} else {
				content = channel.TaggedPacket{Public: public, Masked: masked}
			}

			if err := ledger.Put(cur.Link, public); err != nil {
				log.Error("publish failed", metrics.Fields{"error": err.Error()})
				os.Exit(1)
			}

			msg := &channel.UnwrappedMessage{Link: cur.Link, Content: content}
			payloads := channel.ExtractPayloads(msg)
			log.Debug("published", metrics.Fields{
				"publisher": p.id.String(),
				"seq":       cur.SeqNo,
				"address":   cur.Link.String(),
				"public":    string(payloads.Public),
			})
		}
	}

	table := state.NextMessageIDs()
	ids := make([]channel.PublisherID, 0, len(table))
	for id := range table {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	stored := *messages * *publishers
	fmt.Printf("\nnext-message-id table (%d publishers, %d messages stored):\n", len(ids), stored)
	for _, id := range ids {
		cur := table[id]
		fmt.Printf("  %s  seq=%-3d  %s\n", id, cur.SeqNo, cur.Link)
	}
	fmt.Printf("\ntransport spans recorded: %d\n", len(tracer.Spans()))
}
