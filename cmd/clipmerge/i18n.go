// Package main provides localization for the clipmerge CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"Input":   "入力",
		"Output":  "出力",
		"Library": "ライブラリ",
		"Tools":   "ツール",
		"Debug":   "デバッグ",
		"Logging": "ログ",

		// Root command
		"Merge two video clips under one audio track": "2つの動画を1本の音声トラックでつなげる",
		"clipmerge plays two clips back to back, lays one audio track across both, exports a movie file and saves it to a media library.": "clipmergeは2つの動画を続けて再生し、全体に1本の音声を重ねて動画ファイルに書き出し、メディアライブラリに保存します。",

		// Merge command
		"Merge two clips and an audio track into one movie": "2つの動画と音声を1本の動画に結合",

		// Version command
		"Show version information": "バージョン情報を表示",
		"clipmerge version %s":     "clipmerge バージョン %s",

		// Input flags
		"YAML configuration file":                                    "YAML設定ファイル",
		"First video (plays from the start)":                         "1本目の動画（冒頭から再生）",
		"Second video (plays after the first, sets the output size)": "2本目の動画（1本目の後に再生、出力サイズを決定）",
		"Audio track laid across both clips":                         "両方の動画に重ねる音声",

		// Output flags
		"Directory for the exported movie":               "書き出し先ディレクトリ",
		"Output file name prefix":                        "出力ファイル名の接頭辞",
		"Output container (mov, mp4)":                    "出力コンテナ（mov, mp4）",
		"Quality preset (highest, high, medium, low)":    "品質プリセット（highest, high, medium, low）",
		"Output frame rate (default: 30)":                "出力フレームレート（デフォルト: 30）",
		"Do not move the index to the front of the file": "インデックスをファイル先頭に移動しない",

		// Library flags
		"Library backend (dir, minio)":             "ライブラリの種類（dir, minio）",
		"Directory of the dir library":             "dirライブラリのディレクトリ",
		"Library access (prompt, granted, denied)": "ライブラリへのアクセス（prompt, granted, denied）",

		// Tool flags
		"Path to ffmpeg executable":  "ffmpeg実行ファイルのパス",
		"Path to ffprobe executable": "ffprobe実行ファイルのパス",

		// Debug flags
		"Enable debug output":        "デバッグ出力を有効化",
		"Directory for debug output": "デバッグ出力のディレクトリ",

		// Logging flags
		"Log level (debug, info, warn, error)": "ログレベル（debug, info, warn, error）",
		"Suppress all log output":              "全てのログ出力を抑制",

		// Runtime messages
		"Interrupted, shutting down...":           "中断されました。シャットダウン中...",
		"Interrupted":                             "中断されました",
		"Video saved":                             "動画を保存しました",
		"Failed to save video":                    "動画の保存に失敗しました",
		"Library access denied; video kept at %s": "ライブラリへのアクセスが拒否されました。動画は %s に残っています",
		"Save the video to the library? [y/N]: ":  "動画をライブラリに保存しますか？ [y/N]: ",

		// Summary output flag
		"Output execution summary to file (Markdown format)": "実行サマリーをファイルに出力（Markdown形式）",
		"Summary saved to %s":                                "サマリーを %s に保存しました",
		"Failed to write summary: %v":                        "サマリーの書き込みに失敗しました: %v",

		// Summary content
		"Merge Summary": "結合サマリー",
		"Generated":     "生成日時",
		"Sources":       "素材",
		"Composition":   "構成",
		"Export":        "書き出し",
		"Item":          "項目",
		"Value":         "値",
		"Role":          "役割",
		"Path":          "パス",
		"Duration":      "長さ",
		"Codec":         "コーデック",
		"Size":          "サイズ",
		"First video":   "1本目の動画",
		"Second video":  "2本目の動画",
		"Audio":         "音声",

		"Total Duration":    "合計時間",
		"Cut At":            "切り替え位置",
		"Render Size":       "出力サイズ",
		"Frame Rate":        "フレームレート",
		"Status":            "状態",
		"Container":         "コンテナ",
		"Quality":           "品質",
		"Network Optimized": "ネットワーク最適化",
		"File Size":         "ファイルサイズ",
		"Export Time":       "書き出し時間",
		"Error":             "エラー",
		"Outcome":           "結果",
		"Asset ID":          "アセットID",
		"Location":          "保存先",
		"Yes":               "はい",
		"No":                "いいえ",
		"Generated by":      "生成:",
	})
}
