package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Converting %s...":                         "%s を変換中...",
		"Output saved to %s":                       "出力を %s に保存しました",
		"Converted %s in %d ms":                    "%s の変換が %d ms で完了しました",
		"Interrupted, shutting down...":            "中断されました。シャットダウン中...",
		"Found %d images in %s":                    "画像 %d 件を %s で検出しました",
		"Converting %d images with %d workers":     "%d 個の画像を %d ワーカーで変換中",
		"Batch completed: %d succeeded, %d failed": "バッチ完了: 成功 %d 件, 失敗 %d 件",

		// Compose stage
		"Composing canvas from %s": "%s からキャンバスを合成中",
		"Canvas composed: %dx%d":   "キャンバス合成完了: %dx%d",

		// Frame sequence
		"Rendering %d frames at %d fps": "%d フレームを %d fps でレンダリング中",

		// Encode stage
		"Encoding %d frames to %s":     "%d フレームを %s へエンコード中",
		"Encoded %d frames (%d bytes)": "%d フレームをエンコードしました (%d バイト)",

		// Codec probe
		"Probing codec %s":       "コーデック %s を確認中",
		"Codec %s is usable":     "コーデック %s は使用可能です",
		"Codec %s is not usable": "コーデック %s は使用できません",

		// Stitch
		"Stitching %d clips into %s":  "%d 個のクリップを %s へ連結中",
		"Appended %s (%d frames)":     "%s を連結しました (%d フレーム)",
		"Stitch completed: %d frames": "連結完了: %d フレーム",
		"Removed partial output %s":   "不完全な出力 %s を削除しました",

		// Watch mode
		"Watching %s for new images": "%s の新着画像を監視中",
		"File settled: %s":           "ファイルが安定しました: %s",
		"Watch error: %s":            "監視エラー: %s",
		"Stopped watching":           "監視を停止しました",

		// Debug sink
		"Saved canvas to %s":   "キャンバスを %s に保存しました",
		"Saved frame %d to %s": "フレーム %d を %s に保存しました",

		// Warnings
		"Skipping %s: %s":                 "%s をスキップします: %s",
		"No supported images in %s":       "%s にサポート対象の画像がありません",
		"Failed to save debug output: %s": "デバッグ出力の保存に失敗しました: %s",

		// Errors
		"Failed to convert %s: %s":     "%s の変換に失敗しました: %s",
		"Failed to stitch: %s":         "連結に失敗しました: %s",
		"Failed to write report: %s":   "レポートの書き込みに失敗しました: %s",
		"Failed to load config %s: %s": "設定 %s の読み込みに失敗しました: %s",
	})
}
