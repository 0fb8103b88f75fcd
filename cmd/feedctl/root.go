package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"campus-feed/dto"
	"campus-feed/internal/feedclient"

	"github.com/spf13/cobra"
)

type rootOpts struct {
	server  string
	timeout time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &rootOpts{}
	cmd := &cobra.Command{
		Use:           "feedctl",
		Short:         "Terminal client for the campus feed",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.server, "server", envOr("FEED_SERVER", "http://localhost:4000"), "feed API base URL")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 2*time.Minute, "request timeout")

	cmd.AddCommand(
		newPostsCmd(opts),
		newThreadCmd(opts),
		newPostCmd(opts),
		newCommentCmd(opts),
		newReactCmd(opts),
		newRSVPCmd(opts),
		newSeedCmd(opts),
		newAnalyzeCmd(opts),
		newDraftCmd(opts),
	)
	return cmd
}

func (o *rootOpts) client() *feedclient.Client {
	return feedclient.New(o.server, o.timeout)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newPostsCmd(o *rootOpts) *cobra.Command {
	var (
		postType  string
		limit     int
		bootstrap bool
	)
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "Show the feed grouped by type",
		Long: "Show the feed grouped by type. If the server is unreachable or answers with a\n" +
			"5xx the demo feed is seeded and shown instead; pass --bootstrap-on-failure=false\n" +
			"to just report the error. Request errors such as an unknown --type never seed.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := o.client()
			defer c.Close()
			ctx := cmd.Context()

			if !bootstrap {
				page, err := c.ListPosts(ctx, 1, limit, postType)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), feedclient.RenderFeed(feedclient.DefaultStyles(), page.Items))
				return nil
			}

			posts, seeded, err := c.FeedOrSeed(ctx, limit, postType)
			if err != nil {
				return err
			}
			if seeded {
				fmt.Fprintln(cmd.ErrOrStderr(), "feed unavailable, loaded demo posts")
			}
			fmt.Fprint(cmd.OutOrStdout(), feedclient.RenderFeed(feedclient.DefaultStyles(), posts))
			return nil
		},
	}
	cmd.Flags().StringVar(&postType, "type", "", "event | lostfound | announcement")
	cmd.Flags().IntVar(&limit, "limit", 20, "posts to fetch")
	cmd.Flags().BoolVar(&bootstrap, "bootstrap-on-failure", true, "seed demo posts when the feed cannot be loaded")
	return cmd
}

func newThreadCmd(o *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "thread <postId>",
		Short: "Show a post and its comment tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := o.client()
			defer c.Close()
			ctx := cmd.Context()

			p, err := c.GetPost(ctx, args[0])
			if err != nil {
				return err
			}
			roots, err := c.Thread(ctx, args[0])
			if err != nil {
				return err
			}
			s := feedclient.DefaultStyles()
			fmt.Fprintln(cmd.OutOrStdout(), s.Title.Render(p.Title))
			if p.Description != "" {
				fmt.Fprintln(cmd.OutOrStdout(), p.Description)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			fmt.Fprint(cmd.OutOrStdout(), feedclient.RenderThread(s, roots))
			return nil
		},
	}
}

func newPostCmd(o *rootOpts) *cobra.Command {
	var body dto.CreatePostReq
	cmd := &cobra.Command{
		Use:   "post",
		Short: "Create a post",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := o.client()
			defer c.Close()
			p, err := c.CreatePost(cmd.Context(), body)
			if err != nil {
				return err
			}
			return printJSON(cmd, p)
		},
	}
	f := cmd.Flags()
	f.StringVar(&body.Type, "type", "", "event | lostfound | announcement")
	f.StringVar(&body.Title, "title", "", "title")
	f.StringVar(&body.Description, "description", "", "description")
	f.StringVar(&body.EventDate, "event-date", "", "event date, YYYY-MM-DD or RFC3339")
	f.StringVar(&body.Location, "location", "", "event location")
	f.StringVar(&body.LostFoundType, "lost-found-type", "", "lost | found")
	f.StringVar(&body.Item, "item", "", "lost or found item")
	f.StringVar(&body.LFLocation, "lf-location", "", "where the item was lost or found")
	f.StringVar(&body.ImageURL, "image-url", "", "image URL")
	f.StringVar(&body.Department, "department", "", "announcing department")
	f.StringVar(&body.AttachmentURL, "attachment-url", "", "attachment URL")
	f.StringVar(&body.AttachmentType, "attachment-type", "", "image | pdf")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newCommentCmd(o *rootOpts) *cobra.Command {
	var parent string
	cmd := &cobra.Command{
		Use:   "comment <postId> <text>",
		Short: `Comment on a post ("/meme <idea>" posts a generated image)`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := o.client()
			defer c.Close()
			cm, err := c.Comment(cmd.Context(), dto.CreateCommentReq{PostID: args[0], Content: args[1], ParentID: parent})
			if err != nil {
				return err
			}
			return printJSON(cmd, cm)
		},
	}
	cmd.Flags().StringVar(&parent, "reply-to", "", "parent comment id")
	return cmd
}

func newReactCmd(o *rootOpts) *cobra.Command {
	var onComment bool
	cmd := &cobra.Command{
		Use:   "react <id> <emoji>",
		Short: "Add a reaction to a post or comment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := o.client()
			defer c.Close()
			react := c.ReactToPost
			if onComment {
				react = c.ReactToComment
			}
			r, err := react(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), feedclient.RenderReactions(r))
			return nil
		},
	}
	cmd.Flags().BoolVar(&onComment, "comment", false, "the id is a comment id")
	return cmd
}

func newRSVPCmd(o *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:       "rsvp <postId> <going|interested|notGoing>",
		Short:     "RSVP to an event",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"going", "interested", "notGoing"},
		RunE: func(cmd *cobra.Command, args []string) error {
			c := o.client()
			defer c.Close()
			r, err := c.RSVP(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "going %d · interested %d · not going %d\n", r.Going, r.Interested, r.NotGoing)
			return nil
		},
	}
}

func newSeedCmd(o *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Replace every post with the demo feed",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := o.client()
			defer c.Close()
			res, err := c.Seed(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Message)
			return nil
		},
	}
}

func newAnalyzeCmd(o *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <prompt>",
		Short: "Guess the post type of a prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := o.client()
			defer c.Close()
			a, err := c.Analyze(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, a)
		},
	}
}

func newDraftCmd(o *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "draft <prompt>",
		Short: "Turn a prompt into a post draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := o.client()
			defer c.Close()
			d, err := c.Draft(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, d)
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
