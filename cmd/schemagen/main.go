// schemagen 导出对外数据格式的 JSON Schema
//
// 手部追踪协议（hello/input/welcome）和回合成绩上报载荷是这个
// 游戏仅有的两处对外数据格式，追踪程序和成绩收集端各有一方不在
// 本仓库内。把结构体反射成 JSON Schema 落盘，协作方照着文件对接，
// 结构体改了重新生成即可。
//
// 用法：
//
//	go run ./cmd/schemagen --out docs/schema
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"

	"github.com/gonewx/skywhack/internal/handproto"
	"github.com/gonewx/skywhack/pkg/game"
)

func main() {
	out := flag.String("out", "docs/schema", "Schema 输出目录")
	flag.Parse()

	if err := os.MkdirAll(*out, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "创建输出目录失败: %v\n", err)
		os.Exit(1)
	}

	targets := []struct {
		name  string
		value any
	}{
		{"hand_hello", &handproto.Hello{}},
		{"hand_input", &handproto.Input{}},
		{"hand_welcome", &handproto.Welcome{}},
		{"round_record", &game.RoundRecord{}},
	}

	reflector := &jsonschema.Reflector{}
	for _, target := range targets {
		schema := reflector.Reflect(target.value)
		data, err := json.MarshalIndent(schema, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "序列化 %s 失败: %v\n", target.name, err)
			os.Exit(1)
		}

		path := filepath.Join(*out, target.name+".schema.json")
		if err := writeAtomic(path, append(data, '\n')); err != nil {
			fmt.Fprintf(os.Stderr, "写入 %s 失败: %v\n", path, err)
			os.Exit(1)
		}
		log.Printf("[schemagen] %s", path)
	}
}

// writeAtomic 先写临时文件再改名，避免半截文件
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
