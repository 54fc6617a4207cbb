package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
)

const (
	DefaultHost = "localhost"
	DefaultPort = "8080"
)

type Response struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Canonical string `json:"canonical,omitempty"`
	Optimized string `json:"optimized,omitempty"`
	Rows      int    `json:"rows,omitempty"`
	Plan      string `json:"plan,omitempty"`
	Error     string `json:"error,omitempty"`
}

type Client struct {
	conn   net.Conn
	reader *bufio.Reader
	writer *bufio.Writer
}

func NewClient(host, port string) (*Client, error) {
	address := net.JoinHostPort(host, port)
	conn, err := net.Dial("tcp", address)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to server")
	}

	return &Client{
		conn:   conn,
		reader: bufio.NewReader(conn),
		writer: bufio.NewWriter(conn),
	}, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) Explain(query string) (*Response, error) {
	if _, err := c.writer.WriteString(query + "\n"); err != nil {
		return nil, errors.Wrap(err, "failed to send query")
	}
	if err := c.writer.Flush(); err != nil {
		return nil, errors.Wrap(err, "failed to flush query")
	}

	responseLine, err := c.reader.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			return nil, errors.New("server closed connection")
		}
		return nil, errors.Wrap(err, "failed to read response")
	}

	var response Response
	if err := json.Unmarshal([]byte(strings.TrimSpace(responseLine)), &response); err != nil {
		return nil, errors.Wrap(err, "failed to parse response")
	}

	return &response, nil
}

func printResponse(response *Response) {
	if response.Error != "" {
		fmt.Printf("❌ Error: %s\n\n", response.Error)
		return
	}

	fmt.Printf("canonical: %s\n", response.Canonical)
	fmt.Printf("optimized: %s\n\n", response.Optimized)
	fmt.Print(response.Plan)
	fmt.Printf("\n(%s estimated row(s))\n\n", humanize.Comma(int64(response.Rows)))
}

// processQuery sends a query and prints its plans.
// Returns true if the client should exit (QUIT/EXIT command).
func processQuery(query string, client *Client) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return false
	}

	upperQuery := strings.ToUpper(query)
	if upperQuery == "QUIT" || upperQuery == "EXIT" {
		fmt.Println("Goodbye!")
		return true
	}

	response, err := client.Explain(query)
	if err != nil {
		fmt.Printf("❌ Error: %v\n\n", err)
		return false
	}

	printResponse(response)
	return false
}

func main() {
	host := os.Getenv("SJDB_HOST")
	if host == "" {
		host = DefaultHost
	}

	port := os.Getenv("SJDB_PORT")
	if port == "" {
		port = DefaultPort
	}

	client, err := NewClient(host, port)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting to server: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	fmt.Println("SJDB Client")
	fmt.Printf("Connected to %s:%s\n", host, port)
	fmt.Println("Type 'QUIT' or 'EXIT' to exit, or enter queries ending with ';'")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	var queryBuilder strings.Builder

	for {
		if queryBuilder.Len() == 0 {
			fmt.Print("sjdb> ")
		} else {
			fmt.Print("   -> ")
		}

		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())

		if line == "" {
			continue
		}

		if strings.HasSuffix(line, ";") || queryBuilder.Len() == 0 && isCommand(line) {
			queryBuilder.WriteString(" " + strings.TrimSuffix(line, ";"))
			query := queryBuilder.String()
			queryBuilder.Reset()
			if processQuery(query, client) {
				break
			}
		} else {
			if queryBuilder.Len() > 0 {
				queryBuilder.WriteString(" ")
			}
			queryBuilder.WriteString(line)
		}
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
	}
}

func isCommand(line string) bool {
	upper := strings.ToUpper(line)
	return upper == "QUIT" || upper == "EXIT"
}
