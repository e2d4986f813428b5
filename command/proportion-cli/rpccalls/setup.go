// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpccalls - wrappers around the proportiond JSON-RPC services
package rpccalls

import (
	"bytes"
	"crypto/tls"
	"encoding/hex"
	"io"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/proportiond/fault"
)

// ErrCertificateFingerprintMismatch - pinned fingerprint does not
// match any certificate the server presented
const ErrCertificateFingerprintMismatch = fault.InvalidError("certificate fingerprint mismatch")

// Client - to hold RPC connections streams
type Client struct {
	conn    net.Conn
	client  *rpc.Client
	testnet bool
	verbose bool
	handle  io.Writer // if verbose is set output items here
}

// NewClient - create a RPC connection to a proportiond
//
// a non-blank fingerprint is the hex SHA3-256 of the expected server
// certificate, the connection is refused if no presented certificate
// matches
func NewClient(testnet bool, connect string, fingerprint string, verbose bool, handle io.Writer) (*Client, error) {

	// the daemon runs on a self signed certificate so normal CA
	// verification cannot apply
	tlsConfig := &tls.Config{
		InsecureSkipVerify: true,
	}

	conn, err := tls.Dial("tcp", connect, tlsConfig)
	if err != nil {
		return nil, err
	}

	if "" != fingerprint {
		err = verifyFingerprint(conn, fingerprint)
		if nil != err {
			conn.Close()
			return nil, err
		}
	}

	r := &Client{
		conn:    conn,
		client:  jsonrpc.NewClient(conn),
		testnet: testnet,
		verbose: verbose,
		handle:  handle,
	}
	return r, nil
}

func verifyFingerprint(conn *tls.Conn, fingerprint string) error {

	expected, err := hex.DecodeString(fingerprint)
	if nil != err {
		return err
	}

	for _, certificate := range conn.ConnectionState().PeerCertificates {
		actual := sha3.Sum256(certificate.Raw)
		if bytes.Equal(expected, actual[:]) {
			return nil
		}
	}

	return ErrCertificateFingerprintMismatch
}

// Close - shutdown the proportiond connection
func (c *Client) Close() {
	c.client.Close()
	c.conn.Close()
}
