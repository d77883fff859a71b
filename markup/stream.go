package markup

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrChannelUnavailable 表示中间标记没有可写的落地位置。
var ErrChannelUnavailable = errors.New("markup: 中间标记通道不可用")

// 三段落地时使用的文件名。
const (
	HeaderFile = "header.txt"
	BodyFile   = "body.txt"
	FooterFile = "footer.txt"
)

// WriteSequence 以每行一个标记串的形式写出序列；未经 New 构造的行中若含换行，同样替换为空格。
func WriteSequence(w io.Writer, seq Sequence) error {
	bw := bufio.NewWriter(w)
	for _, l := range seq {
		if _, err := bw.WriteString(lineBreaks.Replace(l.String())); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadSequence 逐行解码；任何一行都不会被拒绝。
func ReadSequence(r io.Reader) (Sequence, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)
	var seq Sequence
	for scanner.Scan() {
		seq = append(seq, Decode(strings.TrimSuffix(scanner.Text(), "\r")))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("读取标记流失败: %w", err)
	}
	return seq, nil
}

// WriteDir 把三段分别写入 dir 下的 header.txt、body.txt、footer.txt。
// 目录无法创建或写入时返回包装了 ErrChannelUnavailable 的错误。
func WriteDir(dir string, s Sections) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: 创建目录 %s 失败: %v", ErrChannelUnavailable, dir, err)
	}
	for _, part := range []struct {
		name string
		seq  Sequence
	}{{HeaderFile, s.Header}, {BodyFile, s.Body}, {FooterFile, s.Footer}} {
		if err := writeFile(filepath.Join(dir, part.name), part.seq); err != nil {
			return fmt.Errorf("%w: %v", ErrChannelUnavailable, err)
		}
	}
	return nil
}

// ReadDir 读取 WriteDir 写出的三段。
func ReadDir(dir string) (Sections, error) {
	var out Sections
	for _, part := range []struct {
		name string
		dst  *Sequence
	}{{HeaderFile, &out.Header}, {BodyFile, &out.Body}, {FooterFile, &out.Footer}} {
		file, err := os.Open(filepath.Join(dir, part.name))
		if err != nil {
			return Sections{}, fmt.Errorf("%w: %v", ErrChannelUnavailable, err)
		}
		seq, err := ReadSequence(file)
		file.Close()
		if err != nil {
			return Sections{}, err
		}
		*part.dst = seq
	}
	return out, nil
}

func writeFile(path string, seq Sequence) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("创建 %s 失败: %w", path, err)
	}
	if err := WriteSequence(file, seq); err != nil {
		file.Close()
		return fmt.Errorf("写入 %s 失败: %w", path, err)
	}
	return file.Close()
}
