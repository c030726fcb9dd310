// Command demo wires a small create-post pipeline out of the railway,
// lookup, and observability packages and runs it once against
// flag-supplied input, to exercise the combinators end to end outside of
// the test suite.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/railwerk/ops/lookup"
	"github.com/railwerk/ops/observability"
	"github.com/railwerk/ops/railway"
)

type authorRepo struct{}

func (authorRepo) GetOne(_ context.Context, attrs map[string]any) (any, error) {
	id, _ := attrs["id"].(string)
	if id == "" {
		return nil, nil
	}
	return railway.Attrs{"id": id, "name": "Author " + id}, nil
}

func validateTitle() railway.Component {
	return railway.ParamsOnly1("validate_title", func(p0 railway.Value) railway.Outcome {
		attrs, _ := p0.(railway.Attrs)
		title, _ := attrs["title"].(string)
		if title == "" {
			return railway.FailFault(railway.Fault{Code: railway.CodeBlank, Path: railway.Path{"title"}})
		}
		return railway.Ok()
	})
}

func createPost() railway.Component {
	return railway.Func1("create_post", func(p0 railway.Value, ctx railway.Context) railway.Outcome {
		attrs, _ := p0.(railway.Attrs)
		author, _ := ctx.Get("author")
		post := railway.Attrs{"title": attrs["title"], "body": attrs["body"], "author": author}
		return railway.OkCtx(railway.NewContext(railway.KV{Key: "post", Value: post}))
	})
}

func notifyAuthor(logger *slog.Logger) railway.Component {
	return railway.Variadic("notify_author", func(params railway.Params, ctx railway.Context) railway.Outcome {
		post, _ := ctx.Get("post")
		logger.Info("notified author of new post", "post", post)
		return railway.Ok()
	})
}

func main() {
	var (
		title    = flag.String("title", "", "Post title (required)")
		body     = flag.String("body", "", "Post body")
		authorID = flag.String("author-id", "", "Author id (required)")
		verbose  = flag.Bool("verbose", false, "Enable verbose logging to stderr")
	)
	flag.Parse()

	if *title == "" || *authorID == "" {
		fmt.Fprintln(os.Stderr, "Usage: demo -title <text> -author-id <id> [-body <text>]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	level := slog.LevelInfo
	minEvent := observability.LevelInfo
	if *verbose {
		level = slog.LevelDebug
		minEvent = observability.LevelVerbose
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	observability.RegisterObserver("slog", observability.NewSlogObserver(logger))

	slogObs, err := observability.GetObserver("slog")
	if err != nil {
		log.Fatalf("observer lookup failed: %v", err)
	}
	metrics := observability.NewCountingObserver()
	obs := observability.NewLevelFilterObserver(
		observability.NewMultiObserver(slogObs, metrics),
		minEvent,
	)

	findAuthor := lookup.FindOne("find_author", "author", authorRepo{}, lookup.With("author_id"))
	tx := railway.Transaction("create_post_tx", railway.InMemoryTxManager{}, createPost(),
		railway.WithOnSuccess(notifyAuthor(logger)),
		railway.WithObserver(obs),
	)

	pipeline := railway.Chain("create_post", validateTitle(), findAuthor, tx)

	input := railway.Attrs{"title": *title, "body": *body, "author_id": *authorID}
	r := pipeline.Call(railway.Params{input}, railway.Context{})

	if r.Failure() {
		log.Fatalf("pipeline failed: %s", railway.FormatFaults(r.Faults))
	}

	post, _ := r.Context.Get("post")
	fmt.Printf("Post created: %v\n", post)
}
