// Package main provides localization for the stillmotion CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"Create zooming videos from still images": "静止画からズームする動画を作成",

		// Commands
		"Convert a still image or a directory of images into video clips": "静止画または画像ディレクトリを動画クリップに変換",
		"Concatenate rendered clips into one video":                       "レンダリング済みクリップを1本の動画に連結",
		"Check whether the configured codec can produce output":           "設定されたコーデックで出力できるか確認",
		"Watch a directory and convert images as they arrive":             "ディレクトリを監視し、届いた画像を順次変換",

		// Output flags
		"Output clip path, or output directory for batch input": "出力クリップパス（ディレクトリ入力時は出力ディレクトリ）",
		"Output video file path":                                "出力動画ファイルパス",
		"Output directory for converted clips":                  "変換済みクリップの出力ディレクトリ",
		"Write a markdown conversion report to this path":       "Markdown形式の変換レポートをこのパスに出力",

		// Video flags
		"Configuration file path (YAML)":             "設定ファイルパス（YAML）",
		"Output video width":                         "出力動画の幅",
		"Output video height":                        "出力動画の高さ",
		"Frame rate of the output video":             "出力動画のフレームレート",
		"Output codec FourCC (MJPG, AVC1, AV01)":     "出力コーデックのFourCC（MJPG, AVC1, AV01）",
		"Container extension (.avi, .mp4)":           "コンテナ拡張子（.avi, .mp4）",
		"Clip duration in seconds":                   "クリップの長さ（秒）",
		"Zoom-in rate per frame":                     "フレームあたりのズーム率",
		"Blur kernel size for the canvas background": "キャンバス背景のぼかしカーネルサイズ",

		// Batch flags
		"Number of parallel workers for batch conversion": "バッチ変換の並列ワーカー数",

		// Watch flags
		"Settle delay for new files in milliseconds": "新着ファイルの安定待ち時間（ミリ秒）",

		// Debug flags
		"Enable debug output":        "デバッグ出力を有効化",
		"Directory for debug output": "デバッグ出力のディレクトリ",

		// Logging flags
		"Log level (debug, info, warn, error)": "ログレベル（debug, info, warn, error）",
		"Suppress all log output":              "全てのログ出力を抑制",

		// Error messages
		"Image or directory argument is required": "画像またはディレクトリ引数が必要です",
		"At least one input clip is required":     "入力クリップが1つ以上必要です",
		"Directory argument is required":          "ディレクトリ引数が必要です",
		"%d of %d conversions failed":             "%d / %d 件の変換に失敗しました",

		// Runtime messages
		"Report saved to %s": "レポートを %s に保存しました",
		"Converting":         "変換中",
	})
}
