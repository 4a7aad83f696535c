package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	mw "vivekananda.org/vivek-web/internal/middleware"
	"vivekananda.org/vivek-web/internal/observability"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Writes the site as static files",
	Long: `The export command renders the home page once per language, together with the
markdown pages, and copies the assets. index.html is the default language and
<lang>/index.html holds every language.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := observability.NewLogger(appConfig.Log.Level)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()
		a, err := newApp(appConfig, logger)
		if err != nil {
			return err
		}
		return a.export(observability.WithLogger(cmd.Context(), logger), exportOut)
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "dist", "output directory")
}

// export writes the static site under out.
func (a *app) export(ctx context.Context, out string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := observability.FromContext(ctx)
	for _, lang := range a.bundle.Supported() {
		page, err := a.buildHome(ctx, homeRequest{
			pref:   mw.Preference{Saved: lang, Fallback: a.bundle.Fallback()},
			static: true,
		})
		if err != nil {
			return fmt.Errorf("render %s: %w", lang, err)
		}
		var buf bytes.Buffer
		err = page.Render(&buf)
		page.Close()
		if err != nil {
			return fmt.Errorf("serialize %s: %w", lang, err)
		}
		if err := writeFile(filepath.Join(out, lang, "index.html"), buf.Bytes()); err != nil {
			return err
		}
		if lang == a.bundle.Fallback() {
			if err := writeFile(filepath.Join(out, "index.html"), buf.Bytes()); err != nil {
				return err
			}
		}

		slugs, err := a.pages.Slugs(lang)
		if err != nil {
			logger.Warn("list pages", zap.String("lang", lang), zap.Error(err))
			continue
		}
		for _, slug := range slugs {
			p, err := a.pages.Get(slug, lang)
			if err != nil {
				return fmt.Errorf("page %s/%s: %w", lang, slug, err)
			}
			var pb bytes.Buffer
			if err := a.tmpl.Execute(&pb, "page", a.pageData(lang, "", p, true)); err != nil {
				return fmt.Errorf("render page %s/%s: %w", lang, slug, err)
			}
			if err := writeFile(filepath.Join(out, lang, "pages", slug, "index.html"), pb.Bytes()); err != nil {
				return err
			}
		}
	}

	assets := filepath.Join(a.cfg.Paths.Public, "assets")
	if err := copyTree(assets, filepath.Join(out, "assets")); err != nil {
		return fmt.Errorf("copy assets: %w", err)
	}
	if info, err := os.Stat(a.cfg.Content.Source); err == nil && !info.IsDir() {
		if err := copyFile(a.cfg.Content.Source, filepath.Join(out, "content.json")); err != nil {
			return fmt.Errorf("copy content: %w", err)
		}
	}
	logger.Info("site exported", zap.String("out", out), zap.Strings("langs", a.bundle.Supported()))
	return nil
}

func writeFile(path string, b []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		return copyFile(path, target)
	})
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
