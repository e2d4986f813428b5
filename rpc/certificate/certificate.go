// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package certificate

import (
	"crypto/tls"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/logger"
)

// Get - build the TLS configuration from PEM certificate and key data
// and return the certificate fingerprint for client pinning
func Get(log *logger.L, name string, certificate string, key string) (*tls.Config, [32]byte, error) {

	keyPair, err := tls.X509KeyPair([]byte(certificate), []byte(key))
	if nil != err {
		log.Errorf("%s failed to load keypair: %v", name, err)
		return nil, [32]byte{}, err
	}

	tlsConfiguration := &tls.Config{
		Certificates: []tls.Certificate{keyPair},
	}

	return tlsConfiguration, Fingerprint(keyPair.Certificate[0]), nil
}

// Fingerprint - the SHA3-256 digest of a DER certificate
//
// matches: openssl x509 -outform DER -in FILE.crt | sha3sum -a 256
func Fingerprint(certificate []byte) [32]byte {
	return sha3.Sum256(certificate)
}
