package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Starting pipeline":               "パイプラインを開始します",
		"Pipeline completed successfully": "パイプラインが正常に完了しました",
		"Output saved to %s":              "出力を %s に保存しました",

		// Load stage
		"Loading assets":                                         "素材を読み込み中",
		"Loaded %s (%s), %s (%s) and %s (%s)":                    "%s (%s)、%s (%s)、%s (%s) を読み込みました",
		"Failed to load assets: %v":                              "素材の読み込みに失敗しました: %v",
		"Probed %s with %s":                                      "%s を %s で解析しました",
		"Native probe of %s failed, falling back to ffprobe: %v": "%s の内蔵解析に失敗したため ffprobe を使用します: %v",

		// Timeline and instruction stages
		"Building timeline":                      "タイムラインを構築中",
		"Timeline built: %s + %s = %s":           "タイムライン構築完了: %s + %s = %s",
		"Failed to build timeline: %v":           "タイムラインの構築に失敗しました: %v",
		"Render size %s at %.2f fps":             "出力サイズ %s、%.2f fps",
		"Failed to build render instruction: %v": "描画指示の作成に失敗しました: %v",

		// Export stage (export, ffmpeg components)
		"Exporting to %s (%s preset)":            "%s に書き出し中 (%s プリセット)",
		"Exporting %s":                           "%s を書き出し中",
		"Running %s with %d inputs":              "%s を %d 入力で実行中",
		"Export finished in %s (%d bytes)":       "書き出しが %s で完了しました (%d バイト)",
		"Export cancelled":                       "書き出しがキャンセルされました",
		"Export failed: %v":                      "書き出しに失敗しました: %v",
		"Export %s: %v":                          "書き出し %s: %v",
		"Failed to start export: %v":             "書き出しを開始できませんでした: %v",
		"Failed to remove partial output %s: %v": "書きかけの出力 %s を削除できませんでした: %v",

		// Completion stage
		"Library authorization failed: %v":              "ライブラリの認可に失敗しました: %v",
		"Library access is %s; keeping %s only on disk": "ライブラリへのアクセスは %s です。%s はディスク上にのみ保存されます",
		"Saved %s as asset %s":                          "%s をアセット %s として保存しました",
		"Failed to save %s to library: %v":              "%s をライブラリに保存できませんでした: %v",

		// Debug output
		"Failed to save %s debug output: %v":       "%s のデバッグ出力の保存に失敗しました: %v",
		"Failed to save timeline debug output: %v": "タイムラインのデバッグ出力の保存に失敗しました: %v",
		"Failed to save filter graph: %v":          "フィルタグラフの保存に失敗しました: %v",
	})
}
