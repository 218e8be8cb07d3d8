package console

import (
	"fmt"
	"strconv"
	"strings"
)

// readLine печатает приглашение и возвращает строку без перевода строки.
func (c *Console) readLine(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (c *Console) readInt(prompt string) (int, error) {
	line, err := c.readLine(prompt)
	if err != nil {
		return 0, err
	}
	value, err := strconv.Atoi(line)
	if err != nil {
		return 0, fmt.Errorf("некорректное число %q", line)
	}
	return value, nil
}

func (c *Console) readFloat(prompt string) (float64, error) {
	line, err := c.readLine(prompt)
	if err != nil {
		return 0, err
	}
	value, err := strconv.ParseFloat(line, 64)
	if err != nil {
		return 0, fmt.Errorf("некорректное число %q", line)
	}
	return value, nil
}

// readYesNo принимает д/н и y/n, любой другой ввод считается отказом.
func (c *Console) readYesNo(prompt string) bool {
	line, err := c.readLine(prompt + " (д/н): ")
	if err != nil {
		return false
	}
	switch strings.ToLower(line) {
	case "д", "да", "y", "yes":
		return true
	}
	return false
}
